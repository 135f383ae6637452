package service

import (
	"errors"

	"go.uber.org/zap"

	"allumni-network/internal/repository"
	apperrors "allumni-network/pkg/errors"
)

// ── 业务错误（对外文案与历史前端保持一致）──

var (
	// 认证
	ErrRegisterFieldsRequired = apperrors.Invalid("Nome, email e senha são obrigatórios")
	ErrEmailTaken             = apperrors.Conflict("Email já cadastrado")
	ErrLoginFieldsRequired    = apperrors.Invalid("Email e senha são obrigatórios")
	ErrInvalidCredentials     = apperrors.Unauthorized("Email ou senha incorretos")
	ErrAccountClosed          = apperrors.Forbidden("Esta conta foi fechada. Entre em contato com o administrador.")

	// 用户与资料
	ErrUserIDRequired = apperrors.Invalid("ID do usuário é obrigatório")
	ErrUserNotFound   = apperrors.NotFound("Usuário não encontrado")

	// 职位
	ErrJobFieldsRequired = apperrors.Invalid("Título, empresa e criador são obrigatórios")
	ErrSalaryRange       = apperrors.Invalid("Salário mínimo não pode ser maior que o máximo")
	ErrJobNotFound       = apperrors.NotFound("Vaga não encontrada")
	ErrAlreadyApplied    = apperrors.Conflict("Você já se candidatou a esta vaga")

	// 群组
	ErrGroupFieldsRequired = apperrors.Invalid("Nome e criador são obrigatórios")
	ErrGroupNotFound       = apperrors.NotFound("Grupo não encontrado")
	ErrAlreadyMember       = apperrors.Conflict("Você já é membro deste grupo")

	// 聊天
	ErrSenderRequired     = apperrors.Invalid("Remetente é obrigatório")
	ErrTargetRequired     = apperrors.Invalid("Destinatário ou grupo é obrigatório")
	ErrTargetAmbiguous    = apperrors.Invalid("Informe destinatário ou grupo, não ambos")
	ErrInvalidMessageKind = apperrors.Invalid("Tipo de mensagem inválido")
	ErrPayloadTooLarge    = apperrors.Invalid("Arquivo excede o tamanho máximo permitido")

	// 管理
	ErrAdminIDRequired = apperrors.Invalid("ID do administrador é obrigatório")
	ErrAdminOnly       = apperrors.Forbidden("Acesso negado. Apenas administradores.")
	ErrSelfClose       = apperrors.Forbidden("Você não pode fechar sua própria conta")
	ErrSelfSuspend     = apperrors.Forbidden("Você não pode suspender sua própria conta")
	ErrSelfDemote      = apperrors.Forbidden("Você não pode remover seus próprios privilégios de admin")
	ErrInvalidStatus   = apperrors.Invalid("Status de conta inválido")
)

// storageError 将存储层错误翻译为业务错误
// notFound 为 nil 时 ErrNotFound 也按内部错误处理
func storageError(logger *zap.Logger, op string, err error, notFound error) error {
	if notFound != nil && errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	logger.Error(op, zap.Error(err))
	return apperrors.Internal(err)
}
