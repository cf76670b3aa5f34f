package mapper

import (
	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:               f.Id,
		OwnerId:          f.OwnerId,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		ContentType:      f.ContentType,
		ContentLength:    f.ContentLength,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        timePtr(f.UpdatedAt),
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:               f.Id,
		OwnerId:          f.OwnerId,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		ContentType:      f.ContentType,
		ContentLength:    f.ContentLength,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        timeOrZero(f.UpdatedAt),
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	entities := make([]*entity.File, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
