package utils

import "testing"

func TestChunkSlice(t *testing.T) {
	tests := []struct {
		name      string
		items     []int
		batchSize int
		expected  [][]int
	}{
		{"even split", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"uneven tail", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"batch larger than input", []int{1, 2}, 10, [][]int{{1, 2}}},
		{"non-positive batch keeps one chunk", []int{1, 2, 3}, 0, [][]int{{1, 2, 3}}},
		{"empty input", []int{}, 3, [][]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkSlice(tt.items, tt.batchSize)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d chunks, got %d", len(tt.expected), len(got))
			}
			for i := range got {
				if len(got[i]) != len(tt.expected[i]) {
					t.Fatalf("chunk %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
				for j := range got[i] {
					if got[i][j] != tt.expected[i][j] {
						t.Fatalf("chunk %d: expected %v, got %v", i, tt.expected[i], got[i])
					}
				}
			}
		})
	}
}
