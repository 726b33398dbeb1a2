package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// PurchaseNotification carries the details of a settled purchase.
type PurchaseNotification struct {
	OrderID       string
	TemplateName  string
	Amount        float64
	Currency      string
	Memo          string
	TransactionID string
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// NotifyPurchase informs the admin chat about a completed purchase.
func (s *TelegramService) NotifyPurchase(n PurchaseNotification) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat not configured")
		return nil
	}

	var b strings.Builder
	b.WriteString("💰 <b>Template purchased</b>\n\n")
	if n.TemplateName != "" {
		fmt.Fprintf(&b, "Template: %s\n", n.TemplateName)
	}
	fmt.Fprintf(&b, "Amount: %.2f %s\n", n.Amount, n.Currency)
	fmt.Fprintf(&b, "Order: %s\n", n.OrderID)
	fmt.Fprintf(&b, "Memo: %s\n", n.Memo)
	if n.TransactionID != "" {
		fmt.Fprintf(&b, "Transaction: %s\n", n.TransactionID)
	}

	return s.SendMessage(s.adminChatID, b.String())
}
