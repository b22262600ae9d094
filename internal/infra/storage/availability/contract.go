package availability

import (
	"github.com/m04kA/InkStudio-BookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
