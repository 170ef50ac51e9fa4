package domain

// WalletState is the connection state of a single chain's wallet.
type WalletState struct {
	Address     string `json:"address,omitempty"`
	Balance     string `json:"balance"`
	IsConnected bool   `json:"isConnected"`
}

// DefaultWalletState returns the disconnected state.
func DefaultWalletState() WalletState {
	return WalletState{Balance: "0"}
}
