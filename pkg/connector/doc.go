// Package connector establishes authenticated Snowflake connections and
// executes queries over them.
//
// # Establishment
//
// An Establisher takes an Intent, the set of deferred connection values
// extracted from configuration, and turns it into a Connection:
//
//  1. user, account, warehouse, role and database must resolve; the first
//     one that does not aborts with a resolution error naming the field.
//  2. schema is optional; failing to resolve it just means "no schema".
//  3. One authentication method is selected, first match wins:
//     private_key, then private_key_path (the file is read in full),
//     then password. Only a value that fails to resolve falls through to
//     the next method. An unreadable key file, or a key that later turns
//     out to be malformed, is a terminal error.
//  4. The client is constructed with the selected method. Construction
//     performs no network I/O.
//
// Secrets never reach the log; the password is logged through secret.Mask
// and key-pair authentication only logs whether a passphrase was given.
//
// # Query Execution
//
// Connection.Execute opens a fresh session for every call, runs one query
// and returns the rows in the order the server produced them. A
// Connection is not safe for concurrent use.
//
//	conn, err := connector.NewEstablisher().Connect(intent)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	rows, err := conn.Execute(ctx, "SELECT CURRENT_VERSION()")
package connector
