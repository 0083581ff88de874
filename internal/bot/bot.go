package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "search",
		Description: "make a search query (IT YAPS A LOT)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "What would you like to search for?",
				Required:    true,
			},
		},
	},
	{
		Name:        "help",
		Description: "Show all available commands and features",
	},
}

// Bot owns the gateway session and adapts gateway events into router calls.
type Bot struct {
	session *discordgo.Session
	router  *Router
	logger  *log.Logger
}

func New(token string, router *Router) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		router:  router,
		logger:  log.New(log.Writer(), "[BOT] ", log.LstdFlags),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteractionCreate)
	return b, nil
}

// Start opens the gateway connection. It fails when the token is rejected.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Printf("Bot is ready! Logged in as %s", r.User.Username)
	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", commands); err != nil {
		b.logger.Printf("register commands: %v", err)
		return
	}
	b.logger.Println("cmds registered!")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || s.State.User == nil {
		return
	}
	ev := MentionEvent{
		AuthorID:    m.Author.ID,
		AuthorIsBot: m.Author.Bot,
		Content:     m.Content,
	}
	b.router.HandleMention(context.Background(), s.State.User.ID, ev, &discordMessage{s: s, m: m.Message})
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	ic := &discordInteraction{s: s, i: i.Interaction}
	data := i.ApplicationCommandData()
	switch data.Name {
	case "search":
		if len(data.Options) == 0 {
			return
		}
		b.router.HandleSearch(context.Background(), data.Options[0].StringValue(), ic)
	case "help":
		b.router.HandleHelp(ic)
	}
}

// discordMessage adapts one inbound message into a MessageContext.
type discordMessage struct {
	s *discordgo.Session
	m *discordgo.Message
}

func (d *discordMessage) Typing() {
	_ = d.s.ChannelTyping(d.m.ChannelID)
}

func (d *discordMessage) Reply(content string) error {
	_, err := d.s.ChannelMessageSendComplex(d.m.ChannelID, &discordgo.MessageSend{
		Content:         content,
		Reference:       d.m.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{RepliedUser: false},
	})
	return err
}

// discordInteraction adapts one slash-command invocation into an
// InteractionContext.
type discordInteraction struct {
	s *discordgo.Session
	i *discordgo.Interaction
}

func (d *discordInteraction) Defer() error {
	return d.s.InteractionRespond(d.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (d *discordInteraction) EditText(content string) error {
	_, err := d.s.InteractionResponseEdit(d.i, &discordgo.WebhookEdit{Content: &content})
	return err
}

func (d *discordInteraction) EditEmbed(embed *discordgo.MessageEmbed) error {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := d.s.InteractionResponseEdit(d.i, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}

func (d *discordInteraction) Followup(embed *discordgo.MessageEmbed) error {
	_, err := d.s.FollowupMessageCreate(d.i, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}

func (d *discordInteraction) RespondEmbed(embed *discordgo.MessageEmbed) error {
	return d.s.InteractionRespond(d.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
