package vlc

// All tables are read only. A zero length marks a combination the format
// leaves undefined.

// ncbp maps coded_block_pattern to its code number:
// ncbp[group][cbp][0 intra, 1 inter], group 0 for ChromaArrayType 0 or 3.
var ncbp = [2][48][2]uint8{
	{
		{1, 0}, {10, 1}, {11, 2}, {6, 5}, {12, 3}, {7, 6}, {14, 14}, {2, 10}, {13, 4}, {15, 15}, {8, 7}, {3, 11},
		{9, 8}, {4, 12}, {5, 13}, {0, 9}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	},
	{
		{3, 0}, {29, 2}, {30, 3}, {17, 7}, {31, 4}, {18, 8}, {37, 17}, {8, 13}, {32, 5}, {38, 18}, {19, 9}, {9, 14},
		{20, 10}, {10, 15}, {11, 16}, {2, 11}, {16, 1}, {33, 32}, {34, 33}, {21, 36}, {35, 34}, {22, 37}, {39, 44}, {4, 40},
		{36, 35}, {40, 45}, {23, 38}, {5, 41}, {24, 39}, {6, 42}, {7, 43}, {1, 19}, {41, 6}, {42, 24}, {43, 25}, {25, 20},
		{44, 26}, {26, 21}, {46, 46}, {12, 28}, {45, 27}, {47, 47}, {27, 22}, {13, 29}, {28, 23}, {14, 30}, {15, 31}, {0, 12},
	},
}

// coeff_token, indexed [nC table][TrailingOnes][TotalCoeff]
var coeffTokenLen = [3][4][17]uint8{
	{
		{1, 6, 8, 9, 10, 11, 13, 13, 13, 14, 14, 15, 15, 16, 16, 16, 16},
		{0, 2, 6, 8, 9, 10, 11, 13, 13, 14, 14, 15, 15, 15, 16, 16, 16},
		{0, 0, 3, 7, 8, 9, 10, 11, 13, 13, 14, 14, 15, 15, 16, 16, 16},
		{0, 0, 0, 5, 6, 7, 8, 9, 10, 11, 13, 14, 14, 15, 15, 16, 16},
	},
	{
		{2, 6, 6, 7, 8, 8, 9, 11, 11, 12, 12, 12, 13, 13, 13, 14, 14},
		{0, 2, 5, 6, 6, 7, 8, 9, 11, 11, 12, 12, 13, 13, 14, 14, 14},
		{0, 0, 3, 6, 6, 7, 8, 9, 11, 11, 12, 12, 13, 13, 13, 14, 14},
		{0, 0, 0, 4, 4, 5, 6, 6, 7, 9, 11, 11, 12, 13, 13, 13, 14},
	},
	{
		{4, 6, 6, 6, 7, 7, 7, 7, 8, 8, 9, 9, 9, 10, 10, 10, 10},
		{0, 4, 5, 5, 5, 5, 6, 6, 7, 8, 8, 9, 9, 9, 10, 10, 10},
		{0, 0, 4, 5, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 10},
		{0, 0, 0, 4, 4, 4, 4, 4, 5, 6, 7, 8, 8, 9, 10, 10, 10},
	},
}

var coeffTokenCode = [3][4][17]uint8{
	{
		{1, 5, 7, 7, 7, 7, 15, 11, 8, 15, 11, 15, 11, 15, 11, 7, 4},
		{0, 1, 4, 6, 6, 6, 6, 14, 10, 14, 10, 14, 10, 1, 14, 10, 6},
		{0, 0, 1, 5, 5, 5, 5, 5, 13, 9, 13, 9, 13, 9, 13, 9, 5},
		{0, 0, 0, 3, 3, 4, 4, 4, 4, 4, 12, 12, 8, 12, 8, 12, 8},
	},
	{
		{3, 11, 7, 7, 7, 4, 7, 15, 11, 15, 11, 8, 15, 11, 7, 9, 7},
		{0, 2, 7, 10, 6, 6, 6, 6, 14, 10, 14, 10, 14, 10, 11, 8, 6},
		{0, 0, 3, 9, 5, 5, 5, 5, 13, 9, 13, 9, 13, 9, 6, 10, 5},
		{0, 0, 0, 5, 4, 6, 8, 4, 4, 4, 12, 8, 12, 12, 8, 1, 4},
	},
	{
		{15, 15, 11, 8, 15, 11, 9, 8, 15, 11, 15, 11, 8, 13, 9, 5, 1},
		{0, 14, 15, 12, 10, 8, 14, 10, 14, 14, 10, 14, 10, 7, 12, 8, 4},
		{0, 0, 13, 14, 11, 9, 13, 9, 13, 10, 13, 9, 13, 9, 11, 7, 3},
		{0, 0, 0, 12, 11, 10, 9, 8, 13, 12, 12, 12, 8, 12, 10, 6, 2},
	},
}

// chroma DC coeff_token, indexed [4:2:0, 4:2:2, 4:4:4][TrailingOnes][TotalCoeff]
var coeffTokenChromaDCLen = [3][4][17]uint8{
	{
		{2, 6, 6, 6, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 6, 7, 8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 3, 7, 8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 6, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	},
	{
		{1, 7, 7, 9, 9, 10, 11, 12, 13, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 2, 7, 7, 9, 10, 11, 12, 12, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 3, 7, 7, 9, 10, 11, 12, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 5, 6, 7, 7, 10, 11, 0, 0, 0, 0, 0, 0, 0, 0},
	},
	coeffTokenLen[0],
}

var coeffTokenChromaDCCode = [3][4][17]uint8{
	{
		{1, 7, 4, 3, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 6, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	},
	{
		{1, 15, 14, 7, 6, 7, 7, 7, 7, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 13, 12, 5, 6, 6, 6, 5, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 11, 10, 4, 5, 5, 4, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 9, 8, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0},
	},
	coeffTokenCode[0],
}

// total_zeros, indexed [TotalCoeff-1][total_zeros]
var totalZerosLen = [15][16]uint8{
	{1, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 9},
	{3, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 6, 6, 6, 6},
	{4, 3, 3, 3, 4, 4, 3, 3, 4, 5, 5, 6, 5, 6},
	{5, 3, 4, 4, 3, 3, 3, 4, 3, 4, 5, 5, 5},
	{4, 4, 4, 3, 3, 3, 3, 3, 4, 5, 4, 5},
	{6, 5, 3, 3, 3, 3, 3, 3, 4, 3, 6},
	{6, 5, 3, 3, 3, 2, 3, 4, 3, 6},
	{6, 4, 5, 3, 2, 2, 3, 3, 6},
	{6, 6, 4, 2, 2, 3, 2, 5},
	{5, 5, 3, 2, 2, 2, 4},
	{4, 4, 3, 3, 1, 3},
	{4, 4, 2, 1, 3},
	{3, 3, 1, 2},
	{2, 2, 1},
	{1, 1},
}

var totalZerosCode = [15][16]uint8{
	{1, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 1},
	{7, 6, 5, 4, 3, 5, 4, 3, 2, 3, 2, 3, 2, 1, 0},
	{5, 7, 6, 5, 4, 3, 4, 3, 2, 3, 2, 1, 1, 0},
	{3, 7, 5, 4, 6, 5, 4, 3, 3, 2, 2, 1, 0},
	{5, 4, 3, 7, 6, 5, 4, 3, 2, 1, 1, 0},
	{1, 1, 7, 6, 5, 4, 3, 2, 1, 1, 0},
	{1, 1, 5, 4, 3, 3, 2, 1, 1, 0},
	{1, 1, 1, 3, 3, 2, 2, 1, 0},
	{1, 0, 1, 3, 2, 1, 1, 1},
	{1, 0, 1, 3, 2, 1, 1},
	{0, 1, 1, 2, 1, 3},
	{0, 1, 1, 1, 1},
	{0, 1, 1, 1},
	{0, 1, 1},
	{0, 1},
}

// chroma DC total_zeros, indexed [4:2:0, 4:2:2, 4:4:4][TotalCoeff-1][total_zeros]
var totalZerosChromaDCLen = [3][15][16]uint8{
	{
		{1, 2, 3, 3},
		{1, 2, 2},
		{1, 1},
	},
	{
		{1, 3, 3, 4, 4, 4, 5, 5},
		{3, 2, 3, 3, 3, 3, 3},
		{3, 3, 2, 2, 3, 3},
		{3, 2, 2, 2, 3},
		{2, 2, 2, 2},
		{2, 2, 1},
		{1, 1},
	},
	totalZerosLen,
}

var totalZerosChromaDCCode = [3][15][16]uint8{
	{
		{1, 1, 1, 0},
		{1, 1, 0},
		{1, 0},
	},
	{
		{1, 2, 3, 2, 3, 1, 1, 0},
		{0, 1, 1, 4, 5, 6, 7},
		{0, 1, 1, 2, 6, 7},
		{6, 0, 1, 2, 7},
		{0, 1, 2, 3},
		{0, 1, 1},
		{0, 1},
	},
	totalZerosCode,
}

// run_before, indexed [min(zerosLeft, 7)-1][run_before]
var runBeforeLen = [7][16]uint8{
	{1, 1},
	{1, 2, 2},
	{2, 2, 2, 2},
	{2, 2, 2, 3, 3},
	{2, 2, 3, 3, 3, 3},
	{2, 3, 3, 3, 3, 3, 3},
	{3, 3, 3, 3, 3, 3, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

var runBeforeCode = [7][16]uint8{
	{1, 0},
	{1, 1, 0},
	{3, 2, 1, 0},
	{3, 2, 1, 1, 0},
	{3, 2, 3, 2, 1, 0},
	{3, 0, 1, 3, 2, 5, 4},
	{7, 6, 5, 4, 3, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// cbpOf inverts ncbp for decoding: cbpOf[group][intra/inter][code number].
var cbpOf = func() (t [2][2][48]int8) {
	for g := range t {
		for k := range t[g] {
			for i := range t[g][k] {
				t[g][k][i] = -1
			}
		}
	}
	for g := range ncbp {
		n := cbpRange(g)
		for cbp := 0; cbp < n; cbp++ {
			for k := 0; k < 2; k++ {
				t[g][k][ncbp[g][cbp][k]] = int8(cbp)
			}
		}
	}
	return
}()
