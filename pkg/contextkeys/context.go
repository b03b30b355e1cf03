package contextkeys

type ContextKey string

// DBContextKey is where DBMiddleware stores the *gorm.DB handle (the shared
// pool, or a transaction when a test injected one).
const DBContextKey ContextKey = "db"
