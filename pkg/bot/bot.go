package bot

import (
	"time"

	tele "gopkg.in/telebot.v3"

	"aquadesk/config"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/service"
)

// CourierSession tracks one courier's registration and the state of an
// in-flight completion dialog.
type CourierSession struct {
	CourierID int64
	State     string

	PendingOrderID int64
	PendingDate    string
	PendingSource  models.OrderSource
	Report         models.DeliveryReport
}

const (
	StateIdle         = "idle"
	StateAwaitPayment = "awaiting_payment_method"
	StateAwaitBidons  = "awaiting_bidons_collected"
)

type Bot struct {
	Bot      *tele.Bot
	Svc      service.IServiceManager
	Log      logger.ILogger
	Cfg      *config.Config
	Sessions map[int64]*CourierSession
}

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.CourierBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		Bot:      b,
		Svc:      svc,
		Log:      log,
		Cfg:      cfg,
		Sessions: make(map[int64]*CourierSession),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("courier bot started")
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Bot.Stop()
}

var messages = map[string]map[string]string{
	"az": {
		"welcome":        "👋 Salam! AquaDesk kuryer botuna xoş gəlmisiniz.",
		"contact_msg":    "Qeydiyyat üçün telefon nömrənizi göndərin:",
		"share_contact":  "📱 Nömrəni paylaş",
		"own_contact":    "Öz nömrənizi göndərin.",
		"registered":     "🎉 Qeydiyyat tamamlandı!",
		"not_courier":    "🚫 Bu nömrə kuryer siyahısında tapılmadı.",
		"menu":           "🚚 Kuryer menyusu:",
		"btn_today":      "🚰 Bugünkü çatdırılmalar",
		"no_deliveries":  "📭 Bu gün üçün çatdırılma yoxdur.",
		"order_line":     "💧 #%d — %s\n📍 %s\n🧴 %d bidon — %.2f AZN",
		"btn_start":      "▶ Başla",
		"btn_complete":   "✅ Tamamla",
		"pick_payment":   "💰 Ödəniş üsulunu seçin:",
		"pay_cash":       "💵 Nağd",
		"pay_card":       "💳 Kart",
		"pay_credit":     "📒 Nisyə",
		"ask_bidons":     "🧴 Neçə boş bidon yığıldı? (rəqəm göndərin)",
		"bad_number":     "Rəqəm göndərin, məsələn: 3",
		"started":        "▶ Çatdırılma başladı.",
		"completed":      "🏁 Çatdırılma tamamlandı. Təşəkkürlər!",
		"stale_order":    "⚠️ Sifarişin stabil nömrəsi yoxdur, siyahını yeniləyin.",
		"action_failed":  "❌ Xəta baş verdi, bir az sonra yenidən yoxlayın.",
		"session_needed": "Əvvəlcə /start ilə qeydiyyatdan keçin.",
	},
}

func msg(key string) string {
	return messages["az"][key]
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle(tele.OnContact, b.handleContact)
	b.Bot.Handle(msg("btn_today"), b.handleTodayDeliveries)
	b.Bot.Handle(tele.OnCallback, b.handleCallback)
	b.Bot.Handle(tele.OnText, b.handleText)
}

func (b *Bot) session(c tele.Context) *CourierSession {
	return b.Sessions[c.Sender().ID]
}

func (b *Bot) showMenu(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(msg("btn_today"))))
	return c.Send(msg("menu"), menu)
}
