package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"crkitchen/internal/config"
	"crkitchen/internal/dto"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
}

// authService stores users as documents of the users collection.
type authService struct {
	repo repository.DocumentoRepository
	docs almacen
	cfg  *config.Config
}

func NewAuthService(repo repository.DocumentoRepository, notif Notificador, cfg *config.Config) AuthService {
	return &authService{repo: repo, docs: nuevoAlmacen(repo, notif, nil), cfg: cfg}
}

func mapUsuario(u model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID,
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Avatar:   u.Avatar,
		Activo:   !u.Inactivo,
	}
}

func (s *authService) usuarios(ctx context.Context) ([]model.Usuario, error) {
	docs, err := s.repo.Listar(ctx, model.RecursoUsuarios)
	if err != nil {
		return nil, err
	}
	out := make([]model.Usuario, 0, len(docs))
	for _, d := range docs {
		var u model.Usuario
		if err := json.Unmarshal(d.Data, &u); err != nil {
			log.Warn().Err(err).Str("id", d.ID).Msg("usuario con documento dañado, omitido")
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *authService) buscarPorUsername(ctx context.Context, username string) (*model.Usuario, error) {
	list, err := s.usuarios(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if strings.EqualFold(list[i].Username, username) {
			return &list[i], nil
		}
	}
	return nil, repository.ErrNoEncontrado
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.buscarPorUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil || user.Inactivo {
		return nil, ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}
	return s.emitir(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("token mal formado")
	}

	doc, err := s.repo.ObtenerPorID(ctx, model.RecursoUsuarios, userID)
	if err != nil {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	var user model.Usuario
	if err := json.Unmarshal(doc.Data, &user); err != nil || user.Inactivo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.emitir(&user)
}

func (s *authService) emitir(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         mapUsuario(*user),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.buscarPorUsername(ctx, req.Username); err == nil {
		return nil, ErrUsuarioDuplicado
	} else if !errors.Is(err, repository.ErrNoEncontrado) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := model.Usuario{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Avatar:       req.Avatar,
	}
	if _, err := s.docs.guardar(ctx, model.RecursoUsuarios, user); err != nil {
		return nil, err
	}
	resp := mapUsuario(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	list, err := s.usuarios(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(list))
	for i, u := range list {
		resp[i] = mapUsuario(u)
	}
	return resp, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"nombre":   user.Nombre,
		"rol":      user.Rol,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
