package embedding

// Request is the body of POST /embeddings.
type Request struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	EncodingFormat string   `json:"encoding_format,omitempty"` // "float" (default) or "base64"
	Dimensions     *int     `json:"dimensions,omitempty"`
	User           string   `json:"user,omitempty"`
}

// Response is the result of an embeddings call.
type Response struct {
	Object string `json:"object"` // "list"
	Data   []Data `json:"data"`
	Model  string `json:"model"`
	Usage  *Usage `json:"usage,omitempty"`
}

// Data is the embedding of one input, identified by its position in Request.Input.
type Data struct {
	Object    string    `json:"object"` // "embedding"
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Vectors returns the embeddings ordered by input index.
func (r *Response) Vectors() [][]float64 {
	if r == nil {
		return nil
	}
	out := make([][]float64, len(r.Data))
	for i, d := range r.Data {
		if d.Index >= 0 && d.Index < len(out) {
			out[d.Index] = d.Embedding
			continue
		}
		out[i] = d.Embedding
	}
	return out
}
