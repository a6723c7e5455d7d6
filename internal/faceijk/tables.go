package faceijk

import "github.com/hexatiles/hexgrid/internal/coordijk"

// faceCenterGeo holds the icosahedron face centers in radians.
var faceCenterGeo = [NumFaces]LatLng{
	{Lat: 0.80358264971899, Lng: 1.2483974196173961},      // face  0
	{Lat: 1.3077478834556382, Lng: 2.5369450098779214},    // face  1
	{Lat: 1.054751253523952, Lng: -1.3475173589003966},    // face  2
	{Lat: 0.6001915955381868, Lng: -0.45060390946975576},  // face  3
	{Lat: 0.49171542819877384, Lng: 0.40198820291130694},  // face  4
	{Lat: 0.1727453274156187, Lng: 1.6781468852804338},    // face  5
	{Lat: 0.6059293215713507, Lng: 2.9539233298124117},    // face  6
	{Lat: 0.42737051832897965, Lng: -1.8888762003362853},  // face  7
	{Lat: -0.07906611854921283, Lng: -0.7334295133808677}, // face  8
	{Lat: -0.23096164445538364, Lng: 0.506495587332349},   // face  9
	{Lat: 0.07906611854921283, Lng: 2.4081631402089254},   // face 10
	{Lat: 0.23096164445538364, Lng: -2.635097066257444},   // face 11
	{Lat: -0.1727453274156187, Lng: -1.4634457683093596},  // face 12
	{Lat: -0.6059293215713507, Lng: -0.18766932377738163}, // face 13
	{Lat: -0.42737051832897965, Lng: 1.2527164532535078},  // face 14
	{Lat: -0.6001915955381868, Lng: 2.6909887441200375},   // face 15
	{Lat: -0.49171542819877384, Lng: -2.7396044506784865}, // face 16
	{Lat: -0.80358264971899, Lng: -1.8931952339723972},    // face 17
	{Lat: -1.3077478834556382, Lng: -0.6046476437118721},  // face 18
	{Lat: -1.054751253523952, Lng: 1.7940752946893965},    // face 19
}

// faceCenterPoint holds the face centers as unit vectors.
var faceCenterPoint = [NumFaces]vec3{
	{0.21993077914046064, 0.6583691780274996, 0.7198475378926182},    // face  0
	{-0.21392348345014206, 0.14781718295507032, 0.9656017935214205},  // face  1
	{0.10926252787847968, -0.48119515728732093, 0.8697775121287253},  // face  2
	{0.7428567301586791, -0.35939416782780276, 0.5648005936517033},   // face  3
	{0.8112534709140969, 0.3448953237639384, 0.472138773641393},      // face  4
	{-0.10554981496139205, 0.9794457296411413, 0.17188746100093655},  // face  5
	{-0.8075407579970092, 0.15335524858988187, 0.5695261994882688},   // face  6
	{-0.28461480697879066, -0.8644080972654206, 0.41447925524735385}, // face  7
	{0.7405621473854481, -0.6673299564565524, -0.0789837646326737},   // face  8
	{0.8512303986474293, 0.4722343788582681, -0.22891373886878078},   // face  9
	{-0.7405621473854481, 0.6673299564565525, 0.0789837646326737},    // face 10
	{-0.8512303986474292, -0.47223437885826824, 0.22891373886878078}, // face 11
	{0.10554981496139196, -0.9794457296411413, -0.17188746100093655}, // face 12
	{0.8075407579970092, -0.15335524858988192, -0.5695261994882688},  // face 13
	{0.28461480697879077, 0.8644080972654204, -0.41447925524735385},  // face 14
	{-0.7428567301586791, 0.3593941678278027, -0.5648005936517033},   // face 15
	{-0.811253470914097, -0.3448953237639383, -0.472138773641393},    // face 16
	{-0.2199307791404607, -0.6583691780274996, -0.7198475378926182},  // face 17
	{0.21392348345014203, -0.14781718295507038, -0.9656017935214205}, // face 18
	{-0.10926252787847962, 0.48119515728732093, -0.8697775121287253}, // face 19
}

// faceAxesAzRadsCII holds the azimuth from each face center to vertices 0, 1, 2
// of the Class II face lattice.
var faceAxesAzRadsCII = [NumFaces][3]float64{
	{5.6199582685239395, 3.5255631661307447, 1.4311680637375488},  // face  0
	{5.7603390817141875, 3.665943979320992, 1.571548876927796},    // face  1
	{0.78021365439343, 4.969003859179821, 2.8746087567866256},     // face  2
	{0.4304693639799999, 4.619259568766391, 2.5248644663731956},   // face  3
	{6.130269123335111, 4.0358740209419155, 1.9414789185487202},   // face  4
	{2.692877706530643, 0.5984826041374471, 4.787272808923838},    // face  5
	{2.982963003477244, 0.8885679010840484, 5.07735810587044},     // face  6
	{3.532912002790141, 1.4385169003969456, 5.627307105183337},    // face  7
	{3.494305004259568, 1.3999099018663728, 5.588700106652764},    // face  8
	{3.0032141694995382, 0.908819067106343, 5.0976092718927335},   // face  9
	{5.930472956509812, 3.836077854116616, 1.7416827517234204},    // face 10
	{0.13837848409025486, 4.327168688876646, 2.23277358648345},    // face 11
	{0.4487149470591504, 4.6375051518455415, 2.543110049452346},   // face 12
	{0.15862965011254937, 4.3474198548989405, 2.2530247525057447}, // face 13
	{5.891865957979238, 3.797470855586043, 1.7030757531928475},    // face 14
	{2.711123289609793, 0.6167281872165977, 4.805518391993989},    // face 15
	{3.294508837434268, 1.2001137350410729, 5.388903939827464},    // face 16
	{3.80481969224544, 1.7104245898522445, 5.8992147946386355},    // face 17
	{3.6644388790551923, 1.570043776661997, 5.758833981448388},    // face 18
	{2.361378999196363, 0.2669838968031676, 4.455774101589559},    // face 19
}

// faceNeighbors holds, for each face, the neighbor orientation in the center
// (itself), IJ, KI and JK quadrant directions.
var faceNeighbors = [NumFaces][4]faceOrient{
	{ // face 0
		{face: 0, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 4, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 1, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 5, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 1
		{face: 1, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 0, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 2, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 6, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 2
		{face: 2, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 1, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 3, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 7, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 3
		{face: 3, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 2, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 4, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 8, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 4
		{face: 4, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 3, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 0, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 9, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 5
		{face: 5, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 10, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 14, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 0, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 6
		{face: 6, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 11, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 10, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 1, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 7
		{face: 7, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 12, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 11, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 2, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 8
		{face: 8, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 13, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 12, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 3, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 9
		{face: 9, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 14, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 13, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 4, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 10
		{face: 10, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 5, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 6, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 15, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 11
		{face: 11, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 6, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 7, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 16, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 12
		{face: 12, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 7, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 8, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 17, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 13
		{face: 13, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 8, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 9, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 18, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 14
		{face: 14, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 9, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 3},
		{face: 5, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 3},
		{face: 19, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 15
		{face: 15, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 16, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 19, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 10, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 16
		{face: 16, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 17, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 15, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 11, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 17
		{face: 17, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 18, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 16, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 12, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 18
		{face: 18, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 19, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 17, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 13, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
	{ // face 19
		{face: 19, translate: coordijk.CoordIJK{I: 0, J: 0, K: 0}, ccwRot60: 0},
		{face: 15, translate: coordijk.CoordIJK{I: 2, J: 0, K: 2}, ccwRot60: 1},
		{face: 18, translate: coordijk.CoordIJK{I: 2, J: 2, K: 0}, ccwRot60: 5},
		{face: 14, translate: coordijk.CoordIJK{I: 0, J: 2, K: 2}, ccwRot60: 3},
	},
}
