package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

// MintRequest описывает запрос на выпуск бейджа
type MintRequest struct {
	WalletAddress  string
	StudentName    string
	QuizTitle      string
	Score          int
	TotalQuestions int
}

// MintReceipt - результат подготовки минтинг-транзакции
type MintReceipt struct {
	TransactionID string
	PolicyID      string
	AssetName     string
	Metadata      entity.BadgeMetadata
	ExplorerURL   string
}

// BadgeMinter выпускает NFT-бейдж в блокчейне
type BadgeMinter interface {
	Mint(ctx context.Context, req MintRequest) (*MintReceipt, error)
}

// BlockfrostMinter готовит минтинг-транзакцию бейджа в сети Cardano preprod.
// Подключение к сети проверяется через Blockfrost, сама транзакция
// симулируется: hash генерируется локально, в блокчейн ничего не уходит.
type BlockfrostMinter struct {
	apiKey   string
	baseURL  string
	policyID string
	client   *http.Client
}

// NewBlockfrostMinter создает минтер на базе Blockfrost API
func NewBlockfrostMinter(apiKey, baseURL, policyID string, timeout time.Duration) *BlockfrostMinter {
	return &BlockfrostMinter{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		policyID: policyID,
		client:   &http.Client{Timeout: timeout},
	}
}

// Mint проверяет доступность сети и готовит CIP-25 метаданные бейджа.
// Любая ошибка возвращается наружу: fallback-пути у минтинга нет.
func (m *BlockfrostMinter) Mint(ctx context.Context, req MintRequest) (*MintReceipt, error) {
	if m.apiKey == "" {
		return nil, fmt.Errorf("%w: blockfrost api key is not configured", apperrors.ErrExternalService)
	}

	if err := m.verifyNetwork(ctx); err != nil {
		return nil, err
	}

	txHash := newTransactionHash()
	assetName := fmt.Sprintf("LearnFlowBadge%d", time.Now().UnixMilli())

	metadata := entity.BadgeMetadata{
		Name:        fmt.Sprintf("LearnFlow Badge - %s", req.QuizTitle),
		Description: fmt.Sprintf("Achievement badge for completing %s with a perfect score", req.QuizTitle),
		Image:       "ipfs://QmYourImageHashHere",
		MediaType:   "image/png",
		Attributes: map[string]string{
			"Student Name":     req.StudentName,
			"Quiz Title":       req.QuizTitle,
			"Score":            fmt.Sprintf("%d/%d", req.Score, req.TotalQuestions),
			"Date Earned":      time.Now().Format("2006-01-02"),
			"Achievement Type": "Perfect Score",
			"Network":          "Cardano Preprod",
			"Issuer":           "LearnFlow Platform",
		},
	}

	return &MintReceipt{
		TransactionID: txHash,
		PolicyID:      m.policyID,
		AssetName:     assetName,
		Metadata:      metadata,
		ExplorerURL:   fmt.Sprintf("https://preprod.cardanoscan.io/transaction/%s", txHash),
	}, nil
}

// verifyNetwork проверяет подключение к сети Cardano preprod
func (m *BlockfrostMinter) verifyNetwork(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/network", nil)
	if err != nil {
		return fmt.Errorf("failed to build blockfrost request: %w", err)
	}
	httpReq.Header.Set("project_id", m.apiKey)

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: blockfrost request failed: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: invalid blockfrost api key", apperrors.ErrExternalService)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: blockfrost returned status %d", apperrors.ErrExternalService, resp.StatusCode)
	}
	return nil
}

// newTransactionHash генерирует 64-символьный hex, похожий на хеш
// транзакции Cardano
func newTransactionHash() string {
	a := strings.ReplaceAll(uuid.NewString(), "-", "")
	b := strings.ReplaceAll(uuid.NewString(), "-", "")
	return a + b
}
