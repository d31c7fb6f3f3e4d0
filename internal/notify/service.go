package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"gymcore/internal/logger"
	"gymcore/internal/metrics"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
	maxTries       = 3
)

type Job struct {
	To       string            `json:"to"`
	Name     string            `json:"name"`
	Template string            `json:"template"`
	Vars     map[string]string `json:"vars"`
	Tries    int               `json:"tries"`
	Created  time.Time         `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// NewWithClient is used by tests to inject a mock redis client.
func NewWithClient(client *redis.Client, fromEmail, fromName string) *Service {
	return &Service{redis: client, from: fromEmail, fromName: fromName}
}

func (s *Service) Queue(ctx context.Context, to, name, templateKey string, vars map[string]string) error {
	job := Job{
		To:       to,
		Name:     name,
		Template: templateKey,
		Vars:     vars,
		Tries:    0,
		Created:  time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue notification to %s: %v", to, err)
		return err
	}

	logger.Infof("Notification queued: %s to %s", templateKey, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending %s notification to %s (attempt %d)", job.Template, job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send notification to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying notification to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Notification to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordNotification(job.Template, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotification(job.Template, "sent")
	logger.Infof("Notification sent successfully to %s", job.To)
}

func (s *Service) sendNow(job Job) error {
	subject, body := Render(job.Template, job.Name, job.Vars)

	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "\r\n" + body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Notification moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
