package models

import (
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
)

// Request модели

// CreatePricingRuleRequest запрос на создание правила ценообразования
type CreatePricingRuleRequest struct {
	MaterialIDs  []int64 `json:"materialIds"`
	MeetingType  string  `json:"meetingType"`
	MinDuration  int     `json:"minDuration"`
	MaxDuration  int     `json:"maxDuration"`
	StudentPrice string  `json:"studentPrice"` // десятичная строка, например "1500.00"

	MentorFeePercentage *int `json:"mentorFeePercentage,omitempty"`
	AdminFeePercentage  *int `json:"adminFeePercentage,omitempty"`
}

// UpdatePricingRuleRequest запрос на обновление правила
// Обновляются только переданные поля
type UpdatePricingRuleRequest struct {
	MaterialIDs  *[]int64 `json:"materialIds,omitempty"`
	MeetingType  *string  `json:"meetingType,omitempty"`
	MinDuration  *int     `json:"minDuration,omitempty"`
	MaxDuration  *int     `json:"maxDuration,omitempty"`
	StudentPrice *string  `json:"studentPrice,omitempty"`

	MentorFeePercentage *int  `json:"mentorFeePercentage,omitempty"`
	AdminFeePercentage  *int  `json:"adminFeePercentage,omitempty"`
	IsActive            *bool `json:"isActive,omitempty"`
}

// Response модели

// PricingRuleResponse ответ с данными правила ценообразования
type PricingRuleResponse struct {
	ID           int64   `json:"id"`
	MaterialIDs  []int64 `json:"materialIds"`
	MeetingType  string  `json:"meetingType"`
	MinDuration  int     `json:"minDuration"`
	MaxDuration  int     `json:"maxDuration"`
	StudentPrice string  `json:"studentPrice"`

	MentorFeePercentage *int `json:"mentorFeePercentage,omitempty"`
	AdminFeePercentage  *int `json:"adminFeePercentage,omitempty"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PricingRuleListResponse ответ со списком правил
type PricingRuleListResponse struct {
	Rules []PricingRuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.PricingRule) *PricingRuleResponse {
	if r == nil {
		return nil
	}

	return &PricingRuleResponse{
		ID:           r.ID,
		MaterialIDs:  r.MaterialIDs,
		MeetingType:  string(r.MeetingType),
		MinDuration:  r.MinDuration,
		MaxDuration:  r.MaxDuration,
		StudentPrice: r.StudentPrice.StringFixed(2),

		MentorFeePercentage: r.MentorFeePercentage,
		AdminFeePercentage:  r.AdminFeePercentage,

		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.PricingRule) *PricingRuleListResponse {
	result := &PricingRuleListResponse{
		Rules: make([]PricingRuleResponse, 0, len(rules)),
	}

	for _, r := range rules {
		if resp := FromDomainRule(r); resp != nil {
			result.Rules = append(result.Rules, *resp)
		}
	}

	return result
}
