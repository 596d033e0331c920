package gemini

import "github.com/longkey1/chatbot/internal/chat"

// Request represents the request body for the generate content API
type Request struct {
	Contents []Content `json:"contents"`
}

// Content represents a content item in the request format
type Content struct {
	Role  string `json:"role"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Part represents a part of the content in the request format
type Part struct {
	Text string `json:"text"`
}

// Response represents the subset of the API response the chatbot reads.
// Pointer fields let absent keys be told apart from empty values.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate represents a candidate response
type Candidate struct {
	Content *ResponseContent `json:"content"`
}

// ResponseContent represents the content of a response
type ResponseContent struct {
	Parts []ResponsePart `json:"parts"`
}

// ResponsePart represents a part of the response content
type ResponsePart struct {
	Text *string `json:"text"`
}

// EncodeContents maps conversation turns to the request payload, one content
// item with a single text part per turn.
func EncodeContents(turns []chat.Turn) Request {
	contents := make([]Content, 0, len(turns))
	for _, t := range turns {
		contents = append(contents, Content{
			Role:  string(t.Role),
			Parts: []Part{{Text: t.Text}},
		})
	}
	return Request{Contents: contents}
}

// DecodeContents maps a request payload back to turns. Parts beyond the
// first are concatenated.
func DecodeContents(req Request) []chat.Turn {
	turns := make([]chat.Turn, 0, len(req.Contents))
	for _, c := range req.Contents {
		var text string
		for _, p := range c.Parts {
			text += p.Text
		}
		turns = append(turns, chat.Turn{Role: chat.Role(c.Role), Text: text})
	}
	return turns
}
