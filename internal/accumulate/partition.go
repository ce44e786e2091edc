package accumulate

// Block is a half-open range [Start, End) of the input assigned to one
// worker. Index is also the index of the partial result slot it writes.
type Block struct {
	Index int
	Start int
	End   int
}

// Len returns the number of elements in the block.
func (b Block) Len() int { return b.End - b.Start }

// Empty reports whether the block covers no element.
func (b Block) Empty() bool { return b.Start == b.End }

// Partition splits [0, length) into exactly p contiguous blocks.
//
// Every block but the last holds length/p elements; the last block starts
// where the others stop and absorbs the remainder. When length < p the
// first p-1 blocks are empty and the last block holds everything. It
// returns nil when p < 1.
func Partition(length, p int) []Block {
	if p < 1 {
		return nil
	}
	if length < 0 {
		length = 0
	}
	blockSize := length / p
	blocks := make([]Block, p)
	start := 0
	for i := 0; i < p-1; i++ {
		end := start + blockSize
		blocks[i] = Block{Index: i, Start: start, End: end}
		start = end
	}
	blocks[p-1] = Block{Index: p - 1, Start: start, End: length}
	return blocks
}
