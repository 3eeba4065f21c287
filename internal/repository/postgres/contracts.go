package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// ContractSchema maps domain.Contract onto clm.contracts.
func ContractSchema() Schema[domain.Contract] {
	return Schema[domain.Contract]{
		Table: "clm.contracts",
		PK:    "id",
		Columns: []string{
			"id",
			"title",
			"description",
			"content",
			"status",
			"organization_id",
			"template_id",
			"created_by_id",
			"created_at",
			"updated_at",
		},
		Scan: func(row pgx.Row) (domain.Contract, error) {
			var contract domain.Contract
			err := row.Scan(
				&contract.ID,
				&contract.Title,
				&contract.Description,
				&contract.Content,
				&contract.Status,
				&contract.OrganizationID,
				&contract.TemplateID,
				&contract.CreatedByID,
				&contract.CreatedAt,
				&contract.UpdatedAt,
			)
			return contract, err
		},
		Values: func(contract domain.Contract) []any {
			return []any{
				contract.ID,
				contract.Title,
				contract.Description,
				contract.Content,
				contract.Status,
				contract.OrganizationID,
				contract.TemplateID,
				contract.CreatedByID,
				contract.CreatedAt,
				contract.UpdatedAt,
			}
		},
	}
}

// SignatureSchema maps domain.Signature onto clm.signatures.
func SignatureSchema() Schema[domain.Signature] {
	return Schema[domain.Signature]{
		Table: "clm.signatures",
		PK:    "id",
		Columns: []string{
			"id",
			"contract_id",
			"user_id",
			"signature_hash",
			"status",
			"signed_at",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.Signature, error) {
			var sig domain.Signature
			err := row.Scan(
				&sig.ID,
				&sig.ContractID,
				&sig.UserID,
				&sig.SignatureHash,
				&sig.Status,
				&sig.SignedAt,
				&sig.CreatedAt,
			)
			return sig, err
		},
		Values: func(sig domain.Signature) []any {
			return []any{
				sig.ID,
				sig.ContractID,
				sig.UserID,
				sig.SignatureHash,
				sig.Status,
				sig.SignedAt,
				sig.CreatedAt,
			}
		},
	}
}

// AttachmentSchema maps domain.Attachment onto clm.attachments.
func AttachmentSchema() Schema[domain.Attachment] {
	return Schema[domain.Attachment]{
		Table: "clm.attachments",
		PK:    "id",
		Columns: []string{
			"id",
			"contract_id",
			"file_name",
			"content_type",
			"size",
			"url",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.Attachment, error) {
			var att domain.Attachment
			err := row.Scan(
				&att.ID,
				&att.ContractID,
				&att.FileName,
				&att.ContentType,
				&att.Size,
				&att.URL,
				&att.CreatedAt,
			)
			return att, err
		},
		Values: func(att domain.Attachment) []any {
			return []any{
				att.ID,
				att.ContractID,
				att.FileName,
				att.ContentType,
				att.Size,
				att.URL,
				att.CreatedAt,
			}
		},
	}
}

// BlockchainTransactionSchema maps domain.BlockchainTransaction onto
// clm.blockchain_transactions.
func BlockchainTransactionSchema() Schema[domain.BlockchainTransaction] {
	return Schema[domain.BlockchainTransaction]{
		Table: "clm.blockchain_transactions",
		PK:    "id",
		Columns: []string{
			"id",
			"contract_id",
			"tx_hash",
			"chain_id",
			"status",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.BlockchainTransaction, error) {
			var tx domain.BlockchainTransaction
			err := row.Scan(
				&tx.ID,
				&tx.ContractID,
				&tx.TxHash,
				&tx.ChainID,
				&tx.Status,
				&tx.CreatedAt,
			)
			return tx, err
		},
		Values: func(tx domain.BlockchainTransaction) []any {
			return []any{
				tx.ID,
				tx.ContractID,
				tx.TxHash,
				tx.ChainID,
				tx.Status,
				tx.CreatedAt,
			}
		},
	}
}
