package archive

import (
	"encoding/json"
	"strconv"

	polarysdb "github.com/polarysfoundation/polarys_db"
	"github.com/sirupsen/logrus"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core/transfer"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
)

// Archive persists mint and transfer history on the collaborator side of
// the boundary. The engine never calls it; records arrive over the bus.
type Archive struct {
	db  *polarysdb.Database
	log *logrus.Logger
}

func Init(dir string, log *logrus.Logger) (*Archive, error) {
	db, err := polarysdb.Init(polarysdb.GenerateKeyFromBytes([]byte("aialgo")), dir)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		db:  db,
		log: log,
	}
	if err := a.initialize(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Archive) initialize() error {
	for _, table := range []string{mintsByHeight, mintsLatest, transfersByID} {
		if !a.db.Exist(table) {
			if err := a.db.Create(table); err != nil {
				return err
			}
		}
	}

	return nil
}

// Attach subscribes the archive to the feed's mint and transfer topics.
func (a *Archive) Attach(feed *journal.Journal) error {
	if err := feed.SubscribeTopic(journal.TopicMint, a.onMint); err != nil {
		return err
	}

	return feed.SubscribeTopic(journal.TopicTransfer, a.onTransfer)
}

func (a *Archive) Detach(feed *journal.Journal) error {
	if err := feed.UnsubscribeTopic(journal.TopicMint, a.onMint); err != nil {
		return err
	}

	return feed.UnsubscribeTopic(journal.TopicTransfer, a.onTransfer)
}

func (a *Archive) onMint(mint *core.Mint) {
	if err := a.WriteMint(mint); err != nil {
		a.log.WithField("height", mint.Height).Errorf("Failed to archive mint: %v", err)
	}
}

func (a *Archive) onTransfer(record *transfer.Transfer) {
	if err := a.WriteTransfer(record); err != nil {
		a.log.WithField("transfer", record.ID).Errorf("Failed to archive transfer: %v", err)
	}
}

func (a *Archive) WriteMint(mint *core.Mint) error {
	if err := a.db.Write(mintsByHeight, strconv.FormatUint(mint.Height, 10), mint); err != nil {
		return err
	}

	return a.db.Write(mintsLatest, "latest", mint)
}

func (a *Archive) LatestMint() (*core.Mint, error) {
	data, ok := a.db.Read(mintsLatest, "latest")
	if !ok {
		return nil, ErrMintNotFound
	}

	return decodeMint(data)
}

func (a *Archive) MintByHeight(height uint64) (*core.Mint, error) {
	data, ok := a.db.Read(mintsByHeight, strconv.FormatUint(height, 10))
	if !ok {
		return nil, ErrMintNotFound
	}

	return decodeMint(data)
}

func (a *Archive) WriteTransfer(record *transfer.Transfer) error {
	return a.db.Write(transfersByID, record.ID, record)
}

func (a *Archive) TransferByID(id string) (*transfer.Transfer, error) {
	data, ok := a.db.Read(transfersByID, id)
	if !ok {
		return nil, ErrTransferNotFound
	}

	return decodeTransfer(data)
}

func (a *Archive) Transfers() ([]*transfer.Transfer, error) {
	data, err := a.db.ReadBatch(transfersByID)
	if err != nil {
		return nil, err
	}

	records := make([]*transfer.Transfer, 0, len(data))
	for _, v := range data {
		record, err := decodeTransfer(v)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func decodeMint(data any) (*core.Mint, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var mint core.Mint
	if err := json.Unmarshal(b, &mint); err != nil {
		return nil, err
	}

	return &mint, nil
}

func decodeTransfer(data any) (*transfer.Transfer, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var record transfer.Transfer
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, err
	}

	return &record, nil
}
