package connectors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"

	"truenorth/src/model"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramNotifier relays created orders to the operator chat. Delivery is
// best effort: the result is reported as a boolean and never as an error,
// so callers cannot accidentally fail a committed order on a lost message.
type TelegramNotifier struct {
	botToken string
	chatID   string
	http     *resty.Client
}

func NewTelegramNotifier(botToken, chatID, baseURL string) *TelegramNotifier {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultTelegramBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(defaultRetryAttempts - 1).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		http:     httpClient,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// NotifyOrder sends the operator a formatted snapshot of a created order.
func (n *TelegramNotifier) NotifyOrder(ctx context.Context, order *model.ExchangeOrder) bool {
	if n.botToken == "" || n.chatID == "" {
		logger.Warn("Telegram bot token or chat ID not configured, skipping notification")
		return false
	}

	var result telegramResponse

	resp, err := n.http.R().
		SetContext(ctx).
		SetBody(telegramMessage{
			ChatID:    n.chatID,
			Text:      formatOrderMessage(order),
			ParseMode: "Markdown",
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", n.botToken))
	if err != nil {
		logger.WithError(err).Error("Telegram notification request failed")
		return false
	}
	if resp.IsError() || !result.OK {
		logger.WithFields(map[string]interface{}{
			"status":      resp.StatusCode(),
			"description": result.Description,
		}).Error("Telegram API rejected notification")
		return false
	}

	logger.WithField("reference_id", order.ReferenceID).
		Info("Telegram notification sent")
	return true
}

// formatOrderMessage keeps the message template of the operator bot.
func formatOrderMessage(order *model.ExchangeOrder) string {
	var b strings.Builder

	b.WriteString("🔄 *Новая заявка на обмен*\n\n")
	fmt.Fprintf(&b, "📋 *ID заказа:* `%s`\n", order.ReferenceID)
	fmt.Fprintf(&b, "📧 *Email:* %s\n", order.Email)
	fmt.Fprintf(&b, "💰 *Отправляет:* %s %s (%s)\n",
		order.SendAmount, order.SendCurrencySymbol, order.SendCurrencyName)
	fmt.Fprintf(&b, "💎 *Получает:* %s %s (%s)\n",
		order.ReceiveAmount, order.ReceiveCurrencySymbol, order.ReceiveCurrencyName)
	fmt.Fprintf(&b, "🏷️ *Тип заказа:* %s\n", order.OrderType)
	fmt.Fprintf(&b, "📍 *Адрес получателя:* `%s`\n", order.RecipientAddress)
	if order.PromoCode != "" {
		fmt.Fprintf(&b, "🎫 *Промо-код:* %s\n", order.PromoCode)
	}
	fmt.Fprintf(&b, "📊 *Статус:* %s\n", order.Status)
	fmt.Fprintf(&b, "⏰ *Создан:* %s\n", order.CreatedAt.Format("02.01.2006 15:04:05"))
	b.WriteString("\n---\n💼 *TrueNorth Exchange*")

	return b.String()
}
