// Package h3 implements a hierarchical hexagonal grid on the sphere.
//
// The sphere is covered by an icosahedron whose twenty faces carry a
// hexagonal lattice. Resolution 0 has 122 base cells; every finer resolution
// subdivides each cell into seven children, alternating the lattice
// orientation between Class II and Class III resolutions. Twelve cells per
// resolution, centered on the icosahedron vertices, are pentagons.
//
// Cells are addressed by a 64-bit Cell index. Latitudes and longitudes are
// in radians; NewLatLng and Degrees convert from and to degrees.
package h3
