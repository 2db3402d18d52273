package model

import "time"

type Building struct {
	BuildingID           string `gorm:"primaryKey"`
	Kind                 string
	X                    float64
	Y                    float64
	GridX                int32
	GridY                int32
	MaxHealth            int32
	Health               int32
	Active               bool
	Type                 string
	State                string
	ConstructionTime     float64
	ConstructionProgress float64
	UpgradeLevel         int32
	MaxUpgradeLevel      int32
	OperationTime        float64
	Version              int64
}

type Train struct {
	TrainID          string `gorm:"primaryKey"`
	Kind             string
	X                float64
	Y                float64
	MaxHealth        int32
	Health           int32
	Active           bool
	State            string
	Speed            float64
	CargoCapacity    int32
	Cargo            []byte `gorm:"type:jsonb"`
	Route            []byte `gorm:"type:jsonb"`
	RouteIndex       int32
	TargetX          float64
	TargetY          float64
	PrevX            float64
	PrevY            float64
	MovementProgress float64
	LoadingTime      float64
	LoadingProgress  float64
	Version          int64
}

type SimEvent struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	EntityID   string `gorm:"index"`
	Type       string
	OccurredAt time.Time
	Payload    []byte `gorm:"type:jsonb"`
}
