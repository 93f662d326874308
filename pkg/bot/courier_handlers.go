package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/service"
)

func (b *Bot) handleStart(c tele.Context) error {
	if sess := b.session(c); sess != nil && sess.CourierID != 0 {
		sess.State = StateIdle
		return b.showMenu(c)
	}

	if err := c.Send(msg("welcome")); err != nil {
		return err
	}
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Contact(msg("share_contact"))))
	return c.Send(msg("contact_msg"), menu)
}

func (b *Bot) handleContact(c tele.Context) error {
	if c.Message().Contact.UserID != c.Sender().ID {
		return c.Send(msg("own_contact"))
	}

	phone, err := service.NormalizePhone(c.Message().Contact.PhoneNumber)
	if err != nil {
		return c.Send(msg("not_courier"))
	}

	for _, courier := range b.Svc.Customer().Couriers(context.Background()) {
		normalized, err := service.NormalizePhone(courier.Phone)
		if err != nil || normalized != phone {
			continue
		}
		b.Sessions[c.Sender().ID] = &CourierSession{CourierID: courier.ID, State: StateIdle}
		if err := c.Send(msg("registered"), tele.RemoveKeyboard); err != nil {
			return err
		}
		return b.showMenu(c)
	}
	return c.Send(msg("not_courier"))
}

func (b *Bot) handleTodayDeliveries(c tele.Context) error {
	sess := b.session(c)
	if sess == nil || sess.CourierID == 0 {
		return c.Send(msg("session_needed"))
	}

	today := time.Now().Format(models.DateLayout)
	report := b.Svc.Report().Build(context.Background(), service.ReportFilter{
		Date:      today,
		CourierID: sess.CourierID,
		Status:    service.StatusFilterPending,
	})

	var orders []*models.Order
	for _, group := range report.Groups {
		orders = append(orders, group.Orders...)
	}
	if len(orders) == 0 {
		return c.Send(msg("no_deliveries"))
	}

	for _, o := range orders {
		text := fmt.Sprintf(msg("order_line"),
			o.ID, o.CustomerFullName, o.CustomerAddress, o.BidonCount, backend.Manat(o.Amount))

		markup := &tele.ReplyMarkup{}
		var row []tele.Btn
		if o.Source == models.SourceBackend && !o.Ephemeral {
			row = append(row, markup.Data(msg("btn_start"), "start", callbackRef(o)))
		}
		row = append(row, markup.Data(msg("btn_complete"), "complete", callbackRef(o)))
		markup.Inline(markup.Row(row...))

		if err := c.Send(text, markup); err != nil {
			return err
		}
	}
	return nil
}

// callbackRef packs the order coordinates into callback data.
func callbackRef(o *models.Order) string {
	return fmt.Sprintf("%s|%s|%d", o.Source, o.Date, o.ID)
}

func parseRef(data string) (models.OrderSource, string, int64, bool) {
	parts := strings.Split(data, "|")
	if len(parts) != 3 {
		return "", "", 0, false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", 0, false
	}
	return models.OrderSource(parts[0]), parts[1], id, true
}

func (b *Bot) handleCallback(c tele.Context) error {
	sess := b.session(c)
	if sess == nil || sess.CourierID == 0 {
		return c.Respond(&tele.CallbackResponse{Text: msg("session_needed")})
	}

	data := strings.TrimSpace(c.Callback().Data)
	unique := strings.TrimPrefix(c.Callback().Unique, "\f")

	// Payment method picks carry the method in the data field.
	if sess.State == StateAwaitPayment && unique == "pay" {
		return b.handlePaymentPicked(c, sess, data)
	}

	source, date, id, ok := parseRef(data)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: msg("action_failed")})
	}

	switch unique {
	case "start":
		return b.handleStartDelivery(c, source, id)
	case "complete":
		sess.State = StateAwaitPayment
		sess.PendingOrderID = id
		sess.PendingDate = date
		sess.PendingSource = source
		sess.Report = models.DeliveryReport{}
		return b.askPaymentMethod(c)
	}
	return c.Respond(&tele.CallbackResponse{})
}

func (b *Bot) handleStartDelivery(c tele.Context, source models.OrderSource, id int64) error {
	if source != models.SourceBackend {
		return c.Respond(&tele.CallbackResponse{Text: msg("action_failed")})
	}
	if err := b.Svc.Order().StartRemote(context.Background(), id); err != nil {
		b.Log.Warning("courier start failed", logger.Int64("order_id", id), logger.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: failureMessage(err)})
	}
	return c.Respond(&tele.CallbackResponse{Text: msg("started")})
}

// failureMessage picks the courier-facing text for a failed order action.
func failureMessage(err error) string {
	if errors.Is(err, models.ErrEphemeralID) {
		return msg("stale_order")
	}
	return msg("action_failed")
}

func (b *Bot) askPaymentMethod(c tele.Context) error {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data(msg("pay_cash"), "pay", string(models.PaymentCash)),
		markup.Data(msg("pay_card"), "pay", string(models.PaymentCard)),
		markup.Data(msg("pay_credit"), "pay", string(models.PaymentCredit)),
	))
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return c.Send(msg("pick_payment"), markup)
}

func (b *Bot) handlePaymentPicked(c tele.Context, sess *CourierSession, method string) error {
	sess.Report.Payment = models.PaymentMethod(method)
	sess.State = StateAwaitBidons
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return c.Send(msg("ask_bidons"))
}

func (b *Bot) handleText(c tele.Context) error {
	sess := b.session(c)
	if sess == nil || sess.State != StateAwaitBidons {
		return nil
	}

	collected, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || collected < 0 {
		return c.Send(msg("bad_number"))
	}
	sess.Report.BidonsCollected = collected
	sess.State = StateIdle

	ctx := context.Background()
	if sess.PendingSource == models.SourceBackend {
		err = b.Svc.Order().CompleteRemote(ctx, sess.PendingOrderID, sess.Report)
	} else {
		_, err = b.Svc.Order().CompleteLocal(ctx, sess.PendingDate, sess.PendingOrderID, sess.Report)
	}
	if err != nil {
		b.Log.Warning("courier completion failed",
			logger.Int64("order_id", sess.PendingOrderID), logger.Error(err))
		return c.Send(failureMessage(err))
	}
	return c.Send(msg("completed"))
}
