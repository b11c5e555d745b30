// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests obtain a connection with GetTestDBWithT, which skips the test when
// neither DATABASE_URL nor TASK_TEST_DB_URL is set, apply the schema with
// SetupTestDatabaseSchema and run their assertions inside WithTx so every
// change is rolled back:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.SetupTestDatabaseSchema(t, db)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    tasks := postgres.NewPostgresTaskStore(tx, nil)
//	    // ...
//	})
package testdb
