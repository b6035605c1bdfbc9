/*
 * doc.go, part of chemmap.
 *
 * Copyright 2022 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package chemmap builds low-dimensional maps of molecular datasets.

It reads datasets of atomic structures with per-structure properties
(extended-XYZ format, plain or gzip/zstd compressed), computes rotationally
invariant per-atom descriptors (package soap), aggregates them into
per-structure feature vectors (package feats), projects the result into few
dimensions with PCA or PCovR (package learn) and exports the map for the
chemiscope interactive viewer (package chemiscope), or as a static scatter
plot (package mapplot).

The cmd/chemmap program drives the whole pipeline from the command line.

Coordinates are kept in gonum Dense matrices with one row per atom, so
everything here interoperates directly with gonum.*/
package chemmap
