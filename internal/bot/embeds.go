package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x0099ff

func searchTitleEmbed(query string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:     embedColor,
		Title:     fmt.Sprintf("🔍 Search: %s", query),
		Footer:    &discordgo.MessageEmbedFooter{Text: "made by @parkourer10"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func searchPartEmbed(description string, part, total int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       embedColor,
		Description: description,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Part %d/%d", part, total)},
	}
}

func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: embedColor,
		Title: "🤖 Yapper Bot Help",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📝 Basic Usage", Value: "Just mention me (@Yapper) followed by your message!"},
			{Name: "🔍 Search Command", Value: "`/search query` - Search the web and get detailed results"},
			{Name: "🧮 Math", Value: "Ask me any math question and I'll give you the answer"},
			{Name: "🔥 Roast Mode", Value: "Type \"roast me\" to get roasted (if you dare)"},
			{Name: "💭 Memory", Value: "I remember our last 10 messages for context"},
			{Name: "📚 Examples", Value: "• @Yapper what is Python?\n• @Yapper 2+2\n• /search latest tech news\n• @Yapper roast me"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "made by @parkourer10 (god help me)"},
	}
}
