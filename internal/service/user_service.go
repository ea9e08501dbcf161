package service

import (
	"context"
	"encoding/json"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

// SkillList 技能列表，JSON 中可以是字符串数组或逗号分隔的字符串
type SkillList []string

func (l *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = trimSkills(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return util.Validationf("skills must be a list or a comma separated string")
	}
	*l = trimSkills(strings.Split(joined, ","))
	return nil
}

func trimSkills(raw []string) []string {
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type SocialLinksUpdate struct {
	GitHub    *string `json:"github"`
	LinkedIn  *string `json:"linkedin"`
	Portfolio *string `json:"portfolio"`
}

// ProfileUpdate 资料更新请求，未出现的字段保持不变
// swagger:model ProfileUpdate
type ProfileUpdate struct {
	Username        *string            `json:"username"`
	Bio             *string            `json:"bio"`
	CurrentPosition *string            `json:"currentPosition"`
	Skills          *SkillList         `json:"skills"`
	Location        *string            `json:"location"`
	Avatar          *string            `json:"avatar"`
	Banner          *string            `json:"banner"`
	Resume          *string            `json:"resume"`
	SocialLinks     *SocialLinksUpdate `json:"socialLinks"`
}

// UserService 处理用户资料相关的业务逻辑
type UserService struct {
	Users   repository.UserStore
	Storage *StorageService
}

func NewUserService(store *repository.Store, storage *StorageService) *UserService {
	return &UserService{Users: store.Users, Storage: storage}
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.User, error) {
	fields := repository.ProfileFields{
		Bio:             in.Bio,
		CurrentPosition: in.CurrentPosition,
		Location:        in.Location,
		Avatar:          in.Avatar,
		Banner:          in.Banner,
		Resume:          in.Resume,
	}
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, util.Validationf("username cannot be empty")
		}
		fields.Username = &name
	}
	if in.Skills != nil {
		fields.Skills = []string(*in.Skills)
	}
	if in.SocialLinks != nil {
		fields.GitHub = in.SocialLinks.GitHub
		fields.LinkedIn = in.SocialLinks.LinkedIn
		fields.Portfolio = in.SocialLinks.Portfolio
	}
	return s.Users.UpdateProfile(ctx, userID, fields)
}

// DeleteResume 删除已上传的简历文件并清空资料中的地址
func (s *UserService) DeleteResume(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Resume == "" {
		return nil, util.ErrNoResume
	}

	if s.Storage != nil {
		if key, ok := s.Storage.KeyFromURL(user.Resume); ok {
			if err := s.Storage.Delete(ctx, key); err != nil {
				logger.Log.Warn("Failed to delete resume object", zap.Uint("userID", userID), zap.String("key", key), zap.Error(err))
			}
		}
	}

	if err := s.Users.ClearResume(ctx, userID); err != nil {
		return nil, err
	}
	user.Resume = ""
	return user, nil
}
