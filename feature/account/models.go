package account

import "encoding/json"

// ArchiverAccount is a row of the archiver's account snapshot table.
type ArchiverAccount struct {
	AccountID   string `gorm:"primaryKey;column:accountId;type:varchar(255)"`
	Data        string `gorm:"column:data;type:text"`
	Timestamp   int64  `gorm:"column:timestamp"`
	Hash        string `gorm:"column:hash;type:varchar(255)"`
	CycleNumber int64  `gorm:"column:cycleNumber"`
	IsGlobal    bool   `gorm:"column:isGlobal"`
}

func (ArchiverAccount) TableName() string {
	return "accounts"
}

// NodeAccountEntry is a row of a node's account ledger table.
type NodeAccountEntry struct {
	AccountID string `gorm:"primaryKey;column:accountId;type:varchar(255)"`
	Timestamp int64  `gorm:"primaryKey;column:timestamp"`
	Data      string `gorm:"column:data;type:text"`
}

func (NodeAccountEntry) TableName() string {
	return "accountsEntry"
}

// taggedValue is an arbitrary-precision number encoded as {"dataType":"bi","value":"<hex>"}.
type taggedValue struct {
	DataType string `json:"dataType"`
	Value    string `json:"value"`
}

// accountFields is the "account" object of a Regular payload.
type accountFields struct {
	Balance json.RawMessage `json:"balance"`
	Nonce   json.RawMessage `json:"nonce"`
}

// envelope holds the top-level fields read from any payload. Everything else
// in the document is ignored.
type envelope struct {
	Account   json.RawMessage `json:"account"`
	Nonce     json.RawMessage `json:"nonce"`
	Hash      json.RawMessage `json:"hash"`
	Timestamp json.RawMessage `json:"timestamp"`
}
