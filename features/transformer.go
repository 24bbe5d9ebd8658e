package features

import "github.com/Mathildevib/DAKI2-grp3-final/sparse"

// Transformer is the combined feature extractor: the tf-idf text block
// followed by the one-hot asset block.
type Transformer struct {
	Text     *Vectorizer `json:"text"`
	Category *OneHot     `json:"category"`
}

// Fit trains both blocks on aligned instruction and category slices.
func Fit(instructions, categories []string, opts Options) *Transformer {
	return &Transformer{
		Text:     Train(instructions, opts),
		Category: TrainOneHot(categories),
	}
}

// NumFeatures returns the total width of the combined feature space.
func (t *Transformer) NumFeatures() int {
	return t.Text.NumFeatures() + t.Category.Len()
}

// Transform encodes one sample. The category indicator lands after the text
// block, so sparse index order is preserved.
func (t *Transformer) Transform(instruction, category string) sparse.Vector {
	vec := t.Text.Transform(instruction)
	if col, ok := t.Category.Index(category); ok {
		vec = append(vec, sparse.Coord{Index: t.Text.NumFeatures() + col, Value: 1})
	}
	return vec
}

// TransformAll encodes every sample into one row vector each.
func (t *Transformer) TransformAll(instructions, categories []string) []sparse.Vector {
	rows := make([]sparse.Vector, len(instructions))
	for i := range instructions {
		rows[i] = t.Transform(instructions[i], categories[i])
	}
	return rows
}
