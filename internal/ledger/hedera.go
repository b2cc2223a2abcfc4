package ledger

import (
	"context"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"docanchor/internal/config"
)

// hederaGateway anchors fingerprints on the Hedera File Service.
// It is safe for concurrent use; the SDK client multiplexes requests.
type hederaGateway struct {
	client *hedera.Client
	maxFee hedera.Hbar
}

// NewHedera creates a ledger gateway backed by the Hedera network named in
// cfg (testnet, previewnet or mainnet). The operator account pays for and
// signs every submission.
func NewHedera(cfg config.HederaConfig) (Gateway, error) {
	if cfg.AccountID == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("hedera operator account id and private key are required")
	}

	operatorID, err := hedera.AccountIDFromString(cfg.AccountID)
	if err != nil {
		return nil, fmt.Errorf("parse hedera account id: %w", err)
	}
	// Keys exported from wallets often carry a 0x prefix the SDK rejects.
	operatorKey, err := hedera.PrivateKeyFromString(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse hedera private key: %w", err)
	}

	var client *hedera.Client
	switch cfg.Network {
	case "mainnet":
		client = hedera.ClientForMainnet()
	case "previewnet":
		client = hedera.ClientForPreviewnet()
	case "", "testnet":
		client = hedera.ClientForTestnet()
	default:
		return nil, fmt.Errorf("unknown hedera network %q", cfg.Network)
	}
	client.SetOperator(operatorID, operatorKey)

	maxFee := cfg.MaxFeeHbar
	if maxFee <= 0 {
		maxFee = 2
	}

	return &hederaGateway{client: client, maxFee: hedera.NewHbar(maxFee)}, nil
}

// Submit creates a new file on the Hedera File Service whose entire content
// is the fingerprint, then waits for the consensus receipt. The SDK manages
// its own request deadlines, so ctx is not threaded into the network calls.
func (g *hederaGateway) Submit(_ context.Context, fingerprint string) (*Proof, error) {
	resp, err := hedera.NewFileCreateTransaction().
		SetKeys(g.client.GetOperatorPublicKey()).
		SetContents([]byte(fingerprint)).
		SetMaxTransactionFee(g.maxFee).
		Execute(g.client)
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}

	receipt, err := resp.GetReceipt(g.client)
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	if receipt.Status != hedera.StatusSuccess {
		return nil, &SubmissionError{Err: fmt.Errorf("receipt status %s", receipt.Status)}
	}
	if receipt.FileID == nil {
		return nil, &SubmissionError{Err: fmt.Errorf("receipt carries no file id")}
	}

	return &Proof{
		FileID:        receipt.FileID.String(),
		TransactionID: resp.TransactionID.String(),
	}, nil
}

// Fetch returns the content stored under fileID.
func (g *hederaGateway) Fetch(_ context.Context, fileID string) (string, error) {
	fid, err := hedera.FileIDFromString(fileID)
	if err != nil {
		return "", &LookupError{FileID: fileID, Err: err}
	}

	contents, err := hedera.NewFileContentsQuery().
		SetFileID(fid).
		Execute(g.client)
	if err != nil {
		return "", &LookupError{FileID: fileID, Err: err}
	}

	return string(contents), nil
}
