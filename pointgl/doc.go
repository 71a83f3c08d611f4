// Package pointgl is a small software renderer that draws a shaded point cloud
// as square splats on a cell grid.
//
// Pipeline (fixed):
//
//	Ring → Revolve → Rotate → Project → Rasterize → Target.
//
// Every vertex carries a unit normal. Brightness is a single directional
// Lambertian term quantized to a handful of levels, and the level sets the side
// of the square drawn for the vertex. Depth is resolved per grid cell: the
// nearest fragment wins and the first one wins on ties.
//
// Vectors and matrices are gonum's r3 types. Only orthonormal rotations are
// applied to meshes so normals keep unit length without renormalizing.
package pointgl
