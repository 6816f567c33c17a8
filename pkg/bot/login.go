package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"qaportal/pkg/logger"
	"qaportal/pkg/phone"
	"qaportal/service"
)

// The login screen: a two-step wizard collecting nickname and phone,
// trying login first and falling back to registration. Either field may
// be skipped with '-', since returning users need only one of the two.

func (b *Bot) startLogin(c tele.Context) error {
	sess := b.session(c)
	sess.State = StateNickname
	sess.Nickname = ""

	c.Send(messages["welcome"], tele.RemoveKeyboard)
	return c.Send(messages["ask_nickname"])
}

func (b *Bot) stepNickname(c tele.Context, sess *ChatSession) error {
	nickname := strings.TrimSpace(c.Text())
	if nickname == "-" {
		nickname = ""
	}
	sess.Nickname = nickname
	sess.State = StatePhone
	return c.Send(messages["ask_phone"])
}

func (b *Bot) stepPhone(c tele.Context, sess *ChatSession) error {
	raw := strings.TrimSpace(c.Text())
	if raw == "-" {
		raw = ""
	}

	// Sanitize before matching, so "+86 138-0000-1111" finds the user
	// stored as "13800001111".
	return b.enter(c, sess, sess.Nickname, phone.Normalize(raw))
}

func (b *Bot) enter(c tele.Context, sess *ChatSession, nickname, phoneNum string) error {
	ctx := context.Background()

	if nickname == "" && phoneNum == "" {
		return b.retryLogin(c, sess, messages["need_any"])
	}

	identity, err := b.Svc.Session().Login(ctx, b.clientID(c), nickname, phoneNum)
	if err == nil {
		sess.State = StateIdle
		if identity.IsAdmin() {
			c.Send(messages["admin_in"])
		} else {
			c.Send(fmt.Sprintf(messages["logged_in"], identity.User.Nickname))
		}
		return b.showMenu(c, identity)
	}

	// No match: try to register. Login itself validates nothing, but a
	// new registration needs a nickname and a real mobile number.
	if nickname == "" {
		return b.retryLogin(c, sess, messages["nickname_required"])
	}
	if !phone.Valid(phoneNum) {
		return b.retryLogin(c, sess, messages["phone_invalid"])
	}

	identity, err = b.Svc.Session().Register(ctx, b.clientID(c), nickname, phoneNum)
	if errors.Is(err, service.ErrConflict) {
		return b.retryLogin(c, sess, messages["taken"])
	}
	if err != nil {
		b.Log.Error("registration failed", logger.Error(err))
		return b.retryLogin(c, sess, messages["taken"])
	}

	sess.State = StateIdle
	c.Send(fmt.Sprintf(messages["registered"], identity.User.Nickname))
	return b.showMenu(c, identity)
}

func (b *Bot) retryLogin(c tele.Context, sess *ChatSession, reason string) error {
	sess.State = StateNickname
	sess.Nickname = ""
	c.Send("❌ " + reason)
	return c.Send(messages["ask_nickname"])
}
