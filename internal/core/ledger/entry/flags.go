package entry

// Account flags
const (
	// AccountAuthRequired requires the issuer to authorize holders
	AccountAuthRequired uint32 = 0x1
	// AccountAuthRevocable lets the issuer revoke an authorization
	AccountAuthRevocable uint32 = 0x2
	// AccountAuthImmutable forbids changing the other auth flags
	AccountAuthImmutable uint32 = 0x4

	AccountAuthMask = AccountAuthRequired | AccountAuthRevocable | AccountAuthImmutable
)

// Trust line / preauthorization flags. Both entry types share the
// same bit meanings.
const (
	// Authorized allows the holder to transact in the asset
	Authorized uint32 = 0x1
	// AuthorizedToMaintainLiabilities allows the holder to keep existing
	// offers and balances but not to increase them
	AuthorizedToMaintainLiabilities uint32 = 0x2

	AuthorizationMask = Authorized | AuthorizedToMaintainLiabilities
)
