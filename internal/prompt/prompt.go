package prompt

import (
	"fmt"
	"strings"

	"github.com/parkourer10/yapper/internal/conversation"
)

// DefaultSystemPrompt is the fixed instruction prepended to every completion
// request made by the mention pipeline.
const DefaultSystemPrompt = `You are Yapper, a terse AI assistant on a chat server. Follow the rules below:

RULES:
. Give ONE response only
. Try to make your responses as short as possible, but not too short.
. Math questions = numbers only
. No commentary
. No personality
. Remember last 10 messages only
. Roast ONLY if user types "roast me".`

// Format renders the system prompt, the bounded conversation history and the
// new user turn into a single completion prompt. It is pure: identical inputs
// produce a byte-identical string.
func Format(systemPrompt string, history []conversation.Turn, userText string) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("User: %s\nAssistant: %s", turn.User, turn.Response))
	}
	return fmt.Sprintf("%s\n\nPrevious conversation:\n%s\n\nUser: %s\nAssistant:",
		systemPrompt, strings.Join(lines, "\n"), userText)
}
