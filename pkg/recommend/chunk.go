package recommend

import "fmt"

// BuildChunks splits content into ordered fragments bounded by adjacent sync
// points. Each chunk covers content between one sync point and the next and is
// tagged with the leading point's offsets; the final point only bounds its
// predecessor, so zero or one points yield no chunks. Concatenating the chunk
// texts reproduces content between the first and last source offsets.
//
// Sync points must be non-decreasing in both coordinates and stay inside the
// content. Violations panic: they mean the caller's offset tracking is broken,
// which is not a recoverable runtime condition.
func BuildChunks(content string, points []SyncPoint) []RecommendationChunk {
	if len(points) < 2 {
		return nil
	}
	for i, pt := range points {
		if pt.Source < 0 || pt.Source > len(content) {
			panic(fmt.Sprintf("recommend: sync point %d source offset %d outside content of length %d", i, pt.Source, len(content)))
		}
		if i > 0 && (pt.Source < points[i-1].Source || pt.Render < points[i-1].Render) {
			panic(fmt.Sprintf("recommend: sync points out of order at index %d", i))
		}
	}

	chunks := make([]RecommendationChunk, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		chunks = append(chunks, RecommendationChunk{
			Text:         content[points[i].Source:points[i+1].Source],
			SourceOffset: points[i].Source,
			RenderOffset: points[i].Render,
		})
	}
	return chunks
}
