// Package db owns the PostgreSQL connection pool and the app's tables.
//
// Connect builds the single pool a process uses; the caller closes it on
// shutdown. The authentication method decides how credentials are obtained:
//
//   - password: credentials come from DATABASE_URL
//   - aws: an RDS IAM token is generated for every new connection
//   - azure: an Entra ID token is requested for every new connection
//   - google: connections are dialled through the Cloud SQL connector with IAM auth
//
// Migrate creates the shops and sessions tables. ShopStore and SessionStore
// read and write them through a Querier, which *pgxpool.Pool satisfies.
package db
