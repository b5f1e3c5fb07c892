package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier é quem efetivamente avisa o responsável (hoje, email).
type Notifier interface {
	SendAssignment(to, assigneeNome, leadNome string) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload AssignmentPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] JSON inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila
				d.Nack(false, false)
				continue
			}

			if payload.AssigneeEmail == "" {
				// Responsável sem email cadastrado, nada a notificar
				d.Ack(false)
				continue
			}

			if err := w.Notifier.SendAssignment(payload.AssigneeEmail, payload.AssigneeNome, payload.LeadNome); err != nil {
				log.Printf("[WORKER] erro ao notificar %s: %s", payload.AssigneeEmail, err)
				d.Nack(false, false)
			} else {
				log.Printf("[WORKER] lead %s notificado para %s", payload.LeadID, payload.AssigneeEmail)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker aguardando na fila '%s'", queueName)
	<-forever
}
