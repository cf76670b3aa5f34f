package mapper

import (
	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                  u.Id,
		Email:               u.Email,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		ResumeCollection:    stringOrEmpty(u.ResumeCollection),
		CandidateCollection: stringOrEmpty(u.CandidateCollection),
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           timePtr(u.UpdatedAt),
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                  u.Id,
		Email:               u.Email,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		ResumeCollection:    stringPtr(u.ResumeCollection),
		CandidateCollection: stringPtr(u.CandidateCollection),
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           timeOrZero(u.UpdatedAt),
	}
}
