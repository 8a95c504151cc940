package chat

import (
	"sort"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
)

// Accumulate drains stream and merges its chunks into a single Completion.
// Content and tool call arguments are concatenated per choice; the last
// reported usage wins. The stream is closed on return.
func Accumulate(stream *gateway.Stream[CompletionChunk]) (*Completion, error) {
	defer stream.Close()

	out := &Completion{Object: "chat.completion"}
	choices := map[int]*Choice{}
	toolCalls := map[int]map[int]*ToolCall{}

	for stream.Next() {
		chunk := stream.Current()
		if out.ID == "" {
			out.ID = chunk.ID
			out.Model = chunk.Model
			out.Created = chunk.Created
		}
		if chunk.Usage != nil {
			out.Usage = chunk.Usage
		}

		for _, cc := range chunk.Choices {
			choice, ok := choices[cc.Index]
			if !ok {
				choice = &Choice{Index: cc.Index, Message: Message{Role: RoleAssistant}}
				choices[cc.Index] = choice
				toolCalls[cc.Index] = map[int]*ToolCall{}
			}
			if cc.Delta.Role != "" {
				choice.Message.Role = cc.Delta.Role
			}
			choice.Message.Content += cc.Delta.Content
			if cc.FinishReason != nil {
				choice.FinishReason = *cc.FinishReason
			}

			for _, part := range cc.Delta.ToolCalls {
				call, ok := toolCalls[cc.Index][part.Index]
				if !ok {
					call = &ToolCall{Type: "function"}
					toolCalls[cc.Index][part.Index] = call
				}
				if part.ID != "" {
					call.ID = part.ID
				}
				if part.Type != "" {
					call.Type = part.Type
				}
				if part.Function.Name != "" {
					call.Function.Name = part.Function.Name
				}
				call.Function.Arguments += part.Function.Arguments
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	for idx, choice := range choices {
		calls := toolCalls[idx]
		keys := make([]int, 0, len(calls))
		for k := range calls {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			choice.Message.ToolCalls = append(choice.Message.ToolCalls, *calls[k])
		}
		out.Choices = append(out.Choices, *choice)
	}
	sort.Slice(out.Choices, func(i, j int) bool { return out.Choices[i].Index < out.Choices[j].Index })

	return out, nil
}
