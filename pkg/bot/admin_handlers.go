package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"
)

// The admin dashboard: every question newest first (soft-deleted ones
// flagged, without an answer button) and the user registry.

func (b *Bot) handleAllQuestions(c tele.Context) error {
	ctx := context.Background()
	identity := b.Svc.Session().Identity(ctx, b.clientID(c))
	if !identity.IsAdmin() {
		return nil
	}

	questions := b.Svc.Session().AllQuestions(ctx)
	if len(questions) == 0 {
		return c.Send(messages["no_questions_all"])
	}

	for _, q := range questions {
		author := "Unknown"
		if u, ok := b.Svc.Session().GetUserByID(ctx, q.AuthorID); ok {
			author = fmt.Sprintf("%s (%s)", u.Nickname, u.Phone)
		}

		txt := fmt.Sprintf("❓ %s\n👤 %s\n🕒 %s", q.Text, author, formatTimestamp(q.Timestamp))
		if q.Answered() {
			txt += fmt.Sprintf("\n\n💬 Answer:\n%s", *q.Answer)
		}

		if q.DeletedByUser {
			txt += "\n\n🗑 [Deleted by user]"
			c.Send(txt)
			continue
		}

		menu := &tele.ReplyMarkup{}
		label := "✏️ Answer"
		if q.Answered() {
			label = "✏️ Edit answer"
		}
		menu.Inline(menu.Row(menu.Data(label, "qans_"+q.ID)))
		c.Send(txt, menu)
	}
	return nil
}

func (b *Bot) handleUsers(c tele.Context) error {
	ctx := context.Background()
	identity := b.Svc.Session().Identity(ctx, b.clientID(c))
	if !identity.IsAdmin() {
		return nil
	}

	users := b.Svc.Session().Users(ctx)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Registered users (%d)\n", len(users)))
	for _, u := range users {
		sb.WriteString(fmt.Sprintf("\n👤 %s — 📞 %s", u.Nickname, u.Phone))
	}
	return c.Send(sb.String())
}

func (b *Bot) handleAnswerCallback(c tele.Context, questionID string) error {
	ctx := context.Background()
	identity := b.Svc.Session().Identity(ctx, b.clientID(c))
	if !identity.IsAdmin() {
		return c.Respond()
	}

	sess := b.session(c)
	sess.State = StateAnswer
	sess.PendingID = questionID

	c.Send(messages["ask_answer"])
	return c.Respond()
}

func (b *Bot) stepAnswer(c tele.Context, sess *ChatSession) error {
	ctx := context.Background()
	sess.State = StateIdle

	identity := b.Svc.Session().Identity(ctx, b.clientID(c))
	if !identity.IsAdmin() {
		return b.startLogin(c)
	}

	b.Svc.Session().AnswerQuestion(ctx, sess.PendingID, c.Text())
	sess.PendingID = ""
	c.Send(messages["answer_saved"])
	return b.showMenu(c, identity)
}
