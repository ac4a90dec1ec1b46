package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/league_service/infra/queue"
	"github.com/SundayYogurt/league_service/mail-svc/config"
	"github.com/SundayYogurt/league_service/mail-svc/internal/api/rest/handlers"
	"github.com/SundayYogurt/league_service/mail-svc/internal/services"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()
	log := logger.InitLogger(cfg.LogLevel)

	log.WithFields(logrus.Fields{
		"broker":   cfg.KafkaBroker,
		"topic":    cfg.KafkaTopic,
		"group_id": cfg.KafkaGroupID,
	}).Info("Mail Service starting...")

	if cfg.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required")
	}

	// ---------- Init Service ----------
	sender := services.SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}
	mailService, err := services.NewMailService(sender, services.MailOptions{
		From:          cfg.MailFrom,
		FromName:      cfg.MailFromName,
		VerifyBaseURL: cfg.VerifyBaseURL,
		SupportInbox:  cfg.SupportInbox,
	}, log)
	if err != nil {
		log.Fatalf("mail service: %v", err)
	}

	// ---------- Init Handler ----------
	handler := handlers.NewMailHandler(mailService, log)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(queue.ConsumerConfig{
		Broker:   cfg.KafkaBroker,
		Topic:    cfg.KafkaTopic,
		GroupID:  cfg.KafkaGroupID,
		Username: cfg.KafkaUsername,
		Password: cfg.KafkaPassword,
	}, "Mail Service", handler, log)

	// ---------- Start Listening ----------
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Mail Service listening for events...")
	if err := consumer.Listen(ctx); err != nil {
		log.WithError(err).Error("consumer stopped")
	}
}
