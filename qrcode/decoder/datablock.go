package decoder

// DataBlock is one Reed-Solomon block: data codewords followed by its
// error-correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks de-interleaves the raw codeword sequence into blocks. Data
// codewords are dealt round-robin across all blocks, the extra data
// codeword of each group-2 block comes next, then the EC codewords are
// dealt round-robin.
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel ECLevel) []DataBlock {
	ecBlocks := version.ECBlocksForLevel(ecLevel)

	result := make([]DataBlock, 0, ecBlocks.NumBlocks())
	for _, block := range ecBlocks.Blocks {
		for i := 0; i < block.Count; i++ {
			result = append(result, DataBlock{
				NumDataCodewords: block.DataCodewords,
				Codewords:        make([]byte, ecBlocks.ECCodewordsPerBlock+block.DataCodewords),
			})
		}
	}
	numBlocks := len(result)

	// Find where longer blocks start
	shorterBlocksTotalCodewords := len(result[0].Codewords)
	longerBlocksStartAt := numBlocks - 1
	for longerBlocksStartAt >= 0 {
		if len(result[longerBlocksStartAt].Codewords) == shorterBlocksTotalCodewords {
			break
		}
		longerBlocksStartAt--
	}
	longerBlocksStartAt++

	shorterBlocksNumDataCodewords := shorterBlocksTotalCodewords - ecBlocks.ECCodewordsPerBlock

	offset := 0
	for i := 0; i < shorterBlocksNumDataCodewords; i++ {
		for j := 0; j < numBlocks; j++ {
			result[j].Codewords[i] = rawCodewords[offset]
			offset++
		}
	}
	for j := longerBlocksStartAt; j < numBlocks; j++ {
		result[j].Codewords[shorterBlocksNumDataCodewords] = rawCodewords[offset]
		offset++
	}
	for i := shorterBlocksNumDataCodewords; i < shorterBlocksTotalCodewords; i++ {
		for j := 0; j < numBlocks; j++ {
			iOffset := i
			if j >= longerBlocksStartAt {
				iOffset = i + 1
			}
			result[j].Codewords[iOffset] = rawCodewords[offset]
			offset++
		}
	}

	return result
}
