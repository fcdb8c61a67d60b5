// Package queue publica y consume tareas en segundo plano con Asynq (Redis).
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault cola de las tareas de la aplicación.
	QueueDefault = "default"

	// TaskClientSalesCount incrementa el contador de ventas de un cliente.
	TaskClientSalesCount = "client:sales_count"

	maxRetry = 5
)

// ClientSalesCountPayload datos de la tarea client:sales_count.
type ClientSalesCountPayload struct {
	UserID   string `json:"user_id"`
	ClientID string `json:"client_id"`
}

// NewClientSalesCountTask construye la tarea para el cliente clientID de userID.
func NewClientSalesCountTask(userID, clientID string) (*asynq.Task, error) {
	if userID == "" || clientID == "" {
		return nil, fmt.Errorf("user_id y client_id son obligatorios")
	}
	body, err := json.Marshal(ClientSalesCountPayload{UserID: userID, ClientID: clientID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskClientSalesCount, body, asynq.Queue(QueueDefault), asynq.MaxRetry(maxRetry)), nil
}
