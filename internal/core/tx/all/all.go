// Package all imports all operation sub-packages to trigger their init() registrations.
// Import this package in the main application to ensure all operation types are registered.
package all

import (
	_ "github.com/LeJamon/goPreauthLedger/internal/core/tx/allowtrust"
	_ "github.com/LeJamon/goPreauthLedger/internal/core/tx/changetrust"
	_ "github.com/LeJamon/goPreauthLedger/internal/core/tx/preauth"
)
