package routes

import (
	"time"

	"github.com/google/uuid"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// The prepare hooks assign server-side fields on decoded create payloads:
// identifiers, creation timestamps, and defaults the client may omit.

func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}

func prepareOrganization(o *domain.Organization) {
	stamp(&o.ID, &o.CreatedAt)
}

func prepareWallet(w *domain.Wallet) {
	stamp(&w.ID, &w.CreatedAt)
}

func prepareContract(c *domain.Contract) {
	stamp(&c.ID, &c.CreatedAt)
	if c.Status == "" {
		c.Status = domain.ContractStatusDraft
	}
}

func prepareSignature(s *domain.Signature) {
	stamp(&s.ID, &s.CreatedAt)
	if s.Status == "" {
		s.Status = "PENDING"
	}
}

func prepareAttachment(a *domain.Attachment) {
	stamp(&a.ID, &a.CreatedAt)
}

func prepareAuditLog(l *domain.AuditLog) {
	stamp(&l.ID, &l.CreatedAt)
}

func prepareBlockchainTransaction(tx *domain.BlockchainTransaction) {
	stamp(&tx.ID, &tx.CreatedAt)
	if tx.TxHash == "" {
		tx.TxHash = domain.NewTxHash()
	}
	if tx.Status == "" {
		tx.Status = domain.TxStatusPending
	}
}

func prepareContractTemplate(t *domain.ContractTemplate) {
	stamp(&t.ID, &t.CreatedAt)
}

func prepareTemplateVersion(v *domain.TemplateVersion) {
	stamp(&v.ID, &v.CreatedAt)
	if v.Version == 0 {
		v.Version = 1
	}
}

func prepareSystemConfig(c *domain.SystemConfig) {
	stamp(&c.ID, &c.CreatedAt)
}

func preparePost(p *domain.Post) {
	stamp(&p.ID, &p.CreatedAt)
}

func prepareCategory(c *domain.Category) {
	stamp(&c.ID, &c.CreatedAt)
}
