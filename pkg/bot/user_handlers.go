package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"
)

// The user dashboard: submit a question, list own non-deleted questions
// newest first, soft-delete via an inline button.

func (b *Bot) handleAskQuestion(c tele.Context) error {
	identity := b.Svc.Session().Identity(context.Background(), b.clientID(c))
	if !identity.IsUser() {
		return b.startLogin(c)
	}

	b.session(c).State = StateQuestion
	return c.Send(messages["ask_question"])
}

func (b *Bot) stepQuestion(c tele.Context, sess *ChatSession) error {
	ctx := context.Background()
	sess.State = StateIdle

	identity := b.Svc.Session().Identity(ctx, b.clientID(c))
	if !identity.IsUser() {
		return b.startLogin(c)
	}

	text := strings.TrimSpace(c.Text())
	if text == "" {
		c.Send(messages["question_empty"])
		return b.showMenu(c, identity)
	}

	b.Svc.Session().AddQuestion(ctx, b.clientID(c), text)
	c.Send(messages["question_saved"])
	return b.showMenu(c, identity)
}

func (b *Bot) handleMyQuestions(c tele.Context) error {
	ctx := context.Background()
	identity := b.Svc.Session().Identity(ctx, b.clientID(c))
	if !identity.IsUser() {
		return b.startLogin(c)
	}

	questions := b.Svc.Session().UserQuestions(ctx, identity.User.ID)
	if len(questions) == 0 {
		return c.Send(messages["no_questions"])
	}

	for _, q := range questions {
		txt := fmt.Sprintf("❓ %s\n🕒 %s", q.Text, formatTimestamp(q.Timestamp))
		if q.Answered() {
			txt += fmt.Sprintf("\n\n💬 Speaker's answer:\n%s", *q.Answer)
		}
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(menu.Data("🗑 Delete", "qdel_"+q.ID)))
		c.Send(txt, menu)
	}
	return nil
}

func (b *Bot) handleDeleteCallback(c tele.Context, questionID string) error {
	b.Svc.Session().DeleteQuestion(context.Background(), questionID)
	b.Bot.Edit(c.Callback().Message, messages["deleted"])
	return c.Respond()
}
