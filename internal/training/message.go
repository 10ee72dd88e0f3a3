package training

import "fmt"

const messageTemplate = "Тип тренировки: %s; " +
	"Длительность: %.3f ч.; " +
	"Дистанция: %.3f км; " +
	"Ср. скорость: %.3f км/ч; " +
	"Потрачено ккал: %.3f."

// InfoMessage is the summary of one finished workout.
type InfoMessage struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration"` // hours
	Distance     float64 `json:"distance"` // km
	Speed        float64 `json:"speed"`    // km/h
	Calories     float64 `json:"calories"` // kcal
}

// GetMessage renders the summary line.
func (m InfoMessage) GetMessage() string {
	return fmt.Sprintf(messageTemplate,
		m.TrainingType,
		m.Duration,
		m.Distance,
		m.Speed,
		m.Calories,
	)
}

func (m InfoMessage) String() string { return m.GetMessage() }
