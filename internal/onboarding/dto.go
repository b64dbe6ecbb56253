package onboarding

import "github.com/imadgeboyega/datemate-backend/internal/preference"

type SetDateTypeRequest struct {
	DateType preference.DateType `json:"date_type" validate:"required,oneof=couple solo friends"`
}

type SetMBTIRequest struct {
	MBTI string `json:"mbti" validate:"required,len=4"`
}

type SetBirthdayRequest struct {
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
}

type SetLocationRequest struct {
	City     string `json:"city" validate:"required,max=30"`
	District string `json:"district" validate:"required,max=30"`
}

type AddTagRequest struct {
	TagID string `json:"tag_id" validate:"required"`
}

type SetBalanceAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	OptionID   string `json:"option_id" validate:"required"`
}

type SetVibeRequest struct {
	Vibe preference.Vibe `json:"vibe" validate:"required,oneof=romantic hip chill adventure emotional foodie"`
}
