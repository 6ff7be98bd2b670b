// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/haierkeys/bookmark-service/internal/domain"
	"github.com/haierkeys/bookmark-service/internal/dto"
	"github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	"github.com/haierkeys/bookmark-service/pkg/logger"
	"github.com/haierkeys/bookmark-service/pkg/util"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册，成功后返回访问令牌
	Register(ctx context.Context, params *dto.AuthRequest) (*dto.TokenDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.AuthRequest) (*dto.TokenDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// Edit 修改当前用户资料
	Edit(ctx context.Context, uid int64, params *dto.UserEditRequest) (*dto.UserDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
	sf           *singleflight.Group
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, lg *zap.Logger, config *ServiceConfig) UserService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       lg,
		config:       config,
		sf:           &singleflight.Group{},
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	out := &dto.UserDTO{}
	_ = copier.Copy(out, user)
	return out
}

// emailTaken reports whether email belongs to an existing user.
// Concurrent sign-ups for the same email share one lookup.
// emailTaken 判断邮箱是否已被使用，相同邮箱的并发查询会被合并
func (s *userService) emailTaken(ctx context.Context, email string) (*domain.User, error) {
	v, err, _ := s.sf.Do("email:"+email, func() (interface{}, error) {
		u, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return (*domain.User)(nil), nil
			}
			return nil, err
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.User), nil
}

func (s *userService) token(user *domain.User) (*dto.TokenDTO, error) {
	token, err := s.tokenManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	return &dto.TokenDTO{AccessToken: token}, nil
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.AuthRequest) (*dto.TokenDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	// 检查邮箱是否已存在
	existing, err := s.emailTaken(ctx, params.Email)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	// 生成密码哈希
	hash, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email: params.Email,
		Hash:  hash,
	})
	if err != nil {
		// 并发注册时由唯一索引兜底
		if existing, lookupErr := s.userRepo.GetByEmail(ctx, params.Email); lookupErr == nil && existing != nil {
			return nil, code.ErrorUserEmailAlreadyExists
		}
		s.logger.Error("UserService.Register failed",
			zap.String(logger.FieldEmail, params.Email),
			zap.Error(err),
		)
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	return s.token(user)
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.AuthRequest) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露用户是否存在，统一返回凭证错误
			return nil, code.ErrorUserLoginPasswordFailed
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// 验证密码
	if !util.CheckPasswordHash(user.Hash, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	return s.token(user)
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		s.logger.Error("UserService.GetInfo failed",
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err),
		)
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(user), nil
}

// Edit 修改当前用户资料
func (s *userService) Edit(ctx context.Context, uid int64, params *dto.UserEditRequest) (*dto.UserDTO, error) {
	if params.Email != nil {
		existing, err := s.emailTaken(ctx, *params.Email)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if existing != nil && existing.ID != uid {
			return nil, code.ErrorUserEmailAlreadyExists
		}
	}

	user, err := s.userRepo.Update(ctx, uid, domain.UserPatch{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		s.logger.Error("UserService.Edit failed",
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err),
		)
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(user), nil
}

// 确保 userService 实现了 UserService 接口
var _ UserService = (*userService)(nil)
