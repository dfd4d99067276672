package api

// Balancer is a load balancer owned by the account.
type Balancer struct {
	ID      int    `json:"id"`
	Label   string `json:"label"`
	Region  string `json:"region"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

// BalancerConfig is one port configuration of a balancer. A balancer may
// listen on several ports, each with its own protocol and health check.
type BalancerConfig struct {
	ID            int    `json:"id"`
	BalancerID    int    `json:"balancer_id"`
	Port          int    `json:"port"`
	Protocol      string `json:"protocol"`
	Algorithm     string `json:"algorithm"`
	Stickiness    string `json:"stickiness"`
	Check         string `json:"check"`
	CheckInterval int    `json:"check_interval"`
	CheckTimeout  int    `json:"check_timeout"`
	CheckAttempts int    `json:"check_attempts"`
	CheckPath     string `json:"check_path"`
}

// Node is a backend target of one balancer config.
type Node struct {
	ID       int    `json:"id"`
	ConfigID int    `json:"config_id"`
	Label    string `json:"label"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Weight   int    `json:"weight"`
	Mode     string `json:"mode"`
	Status   string `json:"status"`
}

// ConfigSpec is the request body for creating or updating a config.
type ConfigSpec struct {
	Port          int    `json:"port"`
	Protocol      string `json:"protocol"`
	Algorithm     string `json:"algorithm"`
	Stickiness    string `json:"stickiness"`
	Check         string `json:"check"`
	CheckInterval int    `json:"check_interval"`
	CheckTimeout  int    `json:"check_timeout"`
	CheckAttempts int    `json:"check_attempts"`
	CheckPath     string `json:"check_path,omitempty"`
}

// NodeSpec is the request body for creating or updating a node.
type NodeSpec struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	Port    int    `json:"port"`
	Weight  int    `json:"weight"`
	Mode    string `json:"mode"`
}

// Invoice is a billing document for the account.
type Invoice struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Account holds billing-level account details shown on the dashboard.
type Account struct {
	Email   string  `json:"email"`
	Company string  `json:"company,omitempty"`
	Balance float64 `json:"balance"`
}
