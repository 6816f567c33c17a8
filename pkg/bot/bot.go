package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"qaportal/config"
	"qaportal/pkg/logger"
	"qaportal/pkg/models"
	"qaportal/service"
)

// ChatSession is per-chat conversation state: which input the bot is
// waiting for and the values collected so far. The portal session
// identity itself lives in the store, not here.
type ChatSession struct {
	State     string
	Nickname  string // login wizard: nickname collected in step 1
	PendingID string // question id awaiting the admin's answer
}

type Bot struct {
	Bot      *tele.Bot
	Log      logger.ILogger
	Cfg      *config.Config
	Svc      service.IServiceManager
	Sessions map[int64]*ChatSession
}

const (
	StateIdle     = "idle"
	StateNickname = "awaiting_nickname"
	StatePhone    = "awaiting_phone"
	StateQuestion = "awaiting_question"
	StateAnswer   = "awaiting_answer"
)

const (
	btnAsk          = "✍️ Ask a Question"
	btnMyQuestions  = "📋 My Questions"
	btnAllQuestions = "📋 All Questions"
	btnUsers        = "👥 Users"
	btnLogout       = "🚪 Log Out"
)

var messages = map[string]string{
	"welcome":           "👋 Welcome to the Q&A portal!\n\nRegister once with a nickname and phone number so your questions stay tied to you. Next time either one is enough to log in.",
	"ask_nickname":      "Enter your nickname (or '-' to skip and log in by phone):",
	"ask_phone":         "Now your phone number (or '-' to skip and log in by nickname):",
	"need_any":          "Please enter nickname or phone number.",
	"nickname_required": "Nickname is required to register.",
	"phone_invalid":     "A valid 11-digit mobile number is required to register.",
	"taken":             "This nickname or phone number is already taken.",
	"registered":        "🎉 Registered successfully. Welcome, %s!",
	"logged_in":         "✅ Welcome back, %s!",
	"admin_in":          "✅ Welcome back, speaker!",
	"logged_out":        "You are logged out.",
	"menu_user":         "What would you like to do?",
	"menu_admin":        "🛠 Admin dashboard:",
	"ask_question":      "Type your question:",
	"question_saved":    "✅ Your question has been submitted.",
	"question_empty":    "Your question is empty, nothing was submitted.",
	"no_questions":      "You haven't asked any questions yet.",
	"no_questions_all":  "📭 No questions have been submitted yet.",
	"ask_answer":        "Type your answer:",
	"answer_saved":      "✅ Answer saved.",
	"deleted":           "🗑 Question deleted.",
}

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		Bot:      b,
		Log:      log,
		Cfg:      cfg,
		Svc:      svc,
		Sessions: make(map[int64]*ChatSession),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("🤖 Q&A portal bot started")
	b.Bot.Start()
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)

	b.Bot.Handle(btnAsk, b.handleAskQuestion)
	b.Bot.Handle(btnMyQuestions, b.handleMyQuestions)
	b.Bot.Handle(btnAllQuestions, b.handleAllQuestions)
	b.Bot.Handle(btnUsers, b.handleUsers)
	b.Bot.Handle(btnLogout, b.handleLogout)

	b.Bot.Handle(tele.OnCallback, b.handleCallback)
	b.Bot.Handle(tele.OnText, b.handleText)
}

func (b *Bot) handleStart(c tele.Context) error {
	identity := b.Svc.Session().Identity(context.Background(), b.clientID(c))
	if identity.IsAnonymous() {
		return b.startLogin(c)
	}

	b.session(c).State = StateIdle
	return b.showMenu(c, identity)
}

func (b *Bot) showMenu(c tele.Context, identity models.Identity) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	if identity.IsAdmin() {
		menu.Reply(
			menu.Row(menu.Text(btnAllQuestions), menu.Text(btnUsers)),
			menu.Row(menu.Text(btnLogout)),
		)
		return c.Send(messages["menu_admin"], menu)
	}

	menu.Reply(
		menu.Row(menu.Text(btnAsk), menu.Text(btnMyQuestions)),
		menu.Row(menu.Text(btnLogout)),
	)
	return c.Send(messages["menu_user"], menu)
}

func (b *Bot) handleText(c tele.Context) error {
	sess := b.session(c)

	switch sess.State {
	case StateNickname:
		return b.stepNickname(c, sess)
	case StatePhone:
		return b.stepPhone(c, sess)
	case StateQuestion:
		return b.stepQuestion(c, sess)
	case StateAnswer:
		return b.stepAnswer(c, sess)
	}
	return nil
}

func (b *Bot) handleCallback(c tele.Context) error {
	// Raw callback data keeps telebot's \f unique prefix.
	data := strings.TrimSpace(strings.TrimPrefix(c.Callback().Data, "\f"))

	if strings.HasPrefix(data, "qdel_") {
		return b.handleDeleteCallback(c, strings.TrimPrefix(data, "qdel_"))
	}
	if strings.HasPrefix(data, "qans_") {
		return b.handleAnswerCallback(c, strings.TrimPrefix(data, "qans_"))
	}
	return c.Respond()
}

func (b *Bot) handleLogout(c tele.Context) error {
	b.Svc.Session().Logout(context.Background(), b.clientID(c))
	c.Send(messages["logged_out"], tele.RemoveKeyboard)
	return b.startLogin(c)
}

func (b *Bot) session(c tele.Context) *ChatSession {
	sess, ok := b.Sessions[c.Sender().ID]
	if !ok {
		sess = &ChatSession{State: StateIdle}
		b.Sessions[c.Sender().ID] = sess
	}
	return sess
}

// clientID scopes the persisted session marker: one telegram chat is one
// portal client.
func (b *Bot) clientID(c tele.Context) string {
	return strconv.FormatInt(c.Sender().ID, 10)
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
