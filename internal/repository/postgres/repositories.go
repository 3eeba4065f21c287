package postgres

import "github.com/covenantlab/contract-platform/internal/core/domain"

// Repositories groups one generic repository instance per entity. Every
// instance shares the same implementation; only the Schema differs.
type Repositories struct {
	Users                  *Repository[domain.User]
	Organizations          *Repository[domain.Organization]
	Members                *Repository[domain.Member]
	Wallets                *Repository[domain.Wallet]
	Contracts              *Repository[domain.Contract]
	Signatures             *Repository[domain.Signature]
	Attachments            *Repository[domain.Attachment]
	AuditLogs              *Repository[domain.AuditLog]
	BlockchainTransactions *Repository[domain.BlockchainTransaction]
	ContractTemplates      *Repository[domain.ContractTemplate]
	TemplateVersions       *Repository[domain.TemplateVersion]
	SystemConfigs          *Repository[domain.SystemConfig]
	Posts                  *Repository[domain.Post]
	Categories             *Repository[domain.Category]
}

// NewRepositories wires all entity repositories backed by the provided
// executor.
func NewRepositories(exec pgExecutor) *Repositories {
	return &Repositories{
		Users:                  NewRepository(exec, UserSchema()),
		Organizations:          NewRepository(exec, OrganizationSchema()),
		Members:                NewRepository(exec, MemberSchema()),
		Wallets:                NewRepository(exec, WalletSchema()),
		Contracts:              NewRepository(exec, ContractSchema()),
		Signatures:             NewRepository(exec, SignatureSchema()),
		Attachments:            NewRepository(exec, AttachmentSchema()),
		AuditLogs:              NewRepository(exec, AuditLogSchema()),
		BlockchainTransactions: NewRepository(exec, BlockchainTransactionSchema()),
		ContractTemplates:      NewRepository(exec, ContractTemplateSchema()),
		TemplateVersions:       NewRepository(exec, TemplateVersionSchema()),
		SystemConfigs:          NewRepository(exec, SystemConfigSchema()),
		Posts:                  NewRepository(exec, PostSchema()),
		Categories:             NewRepository(exec, CategorySchema()),
	}
}
