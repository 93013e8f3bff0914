package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"community-board/config"
	"community-board/pkg/mailer"
)

// notifier consumes notice events and emails the configured community
// recipients about newly published notices.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; notifier disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNoticeQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}
	recipients := cfg.Recipients()
	if len(recipients) == 0 {
		log.Fatal("NOTIFY_RECIPIENTS is empty")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch biar fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQNoticeQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQNoticeQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev mailer.NoticeEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			subject, text, htmlBody := renderAlert(ev)

			failed := false
			for _, to := range recipients {
				c, cancel := context.WithTimeout(ctx, 15*time.Second)
				if err := mg.Send(c, to, subject, text, htmlBody); err != nil {
					cancel()
					log.Printf("send to %s failed: %v", to, err)
					failed = true
					break
				}
				cancel()
			}
			if failed {
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("notifier listening on queue=%s recipients=%d", cfg.RabbitMQNoticeQueue, len(recipients))
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func renderAlert(ev mailer.NoticeEvent) (subject, text, htmlBody string) {
	subject = "New notice: " + ev.Title
	if ev.Category != "" {
		subject = fmt.Sprintf("[%s] %s", ev.Category, subject)
	}
	text = fmt.Sprintf("%s\n\n%s\n\nDate: %s", ev.Title, ev.Body, ev.Date.Format("02 January 2006"))
	htmlBody = fmt.Sprintf(
		"<h2>%s</h2><p>%s</p><p><em>Date: %s</em></p>",
		html.EscapeString(ev.Title),
		html.EscapeString(ev.Body),
		ev.Date.Format("02 January 2006"),
	)
	return subject, text, htmlBody
}
