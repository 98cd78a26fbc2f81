// Package account implements the account store side of the comparison.
//
// It provides:
//   - Normalizer: decodes the two known account JSON encodings (Regular
//     accounts with tagged hex balance/nonce, Special network accounts with a
//     plain decimal nonce) into reconcile.Snapshot.
//   - TableSource: a reconcile.Source reading (accountId, data, timestamp)
//     rows from the archiver "accounts" table or a node "accountsEntry" table.
//   - DiscoverNodes: finds node database files under a nodes folder and names
//     each node after its instance folder.
//
// # Payloads
//
// Regular:
//
//	{"account":{"balance":{"dataType":"bi","value":"de0b6b3a7640000"},
//	            "nonce":{"dataType":"bi","value":"3"}, ...},
//	 "accountType":0,"hash":"...","timestamp":1700000000000}
//
// Special:
//
//	{"accountType":13,"id":"...","name":"Foundation","nonce":7,"hash":"...","timestamp":1700000000000}
package account
