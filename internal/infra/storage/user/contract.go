package user

import "github.com/m04kA/yakidesk/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
