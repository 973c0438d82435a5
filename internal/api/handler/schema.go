package handler

// apiResponse is the canonical success envelope.
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorEnvelope is the canonical error envelope.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// --- Auth request / response types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type registerData struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	NextStep string `json:"next_step"`
}

type userData struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type tokenPairExpiry struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type loginData struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	User         userData        `json:"user"`
	ExpiresIn    tokenPairExpiry `json:"expires_in"`
}

type refreshData struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userData `json:"user"`
	ExpiresIn   string   `json:"expires_in"`
}

type logoutData struct {
	Info string `json:"info"`
}

// --- Prediction request types ---

// predictRequest carries the nine bounded inputs. Fields whose zero value is
// inside the valid range deliberately omit "required" so legitimate zeros
// are not rejected.
type predictRequest struct {
	Pregnancies              int     `json:"pregnancies"                validate:"gte=0,lte=20"`
	Glucose                  float64 `json:"glucose"                    validate:"required,gte=50,lte=400"`
	BloodPressure            float64 `json:"blood_pressure"             validate:"required,gte=40,lte=200"`
	SkinThickness            float64 `json:"skin_thickness"             validate:"gte=0,lte=100"`
	Insulin                  float64 `json:"insulin"                    validate:"gte=0,lte=900"`
	Weight                   float64 `json:"weight"                     validate:"required,gte=20,lte=300"`
	Height                   float64 `json:"height"                     validate:"required,gte=1.0,lte=2.5"`
	DiabetesPedigreeFunction float64 `json:"diabetes_pedigree_function" validate:"gte=0,lte=2.5"`
	Age                      int     `json:"age"                        validate:"required,gte=1,lte=120"`
}

// --- History response types ---

type historyEntry struct {
	RiskLevel   string  `json:"risk_level"`
	Probability float64 `json:"probability"`
	BMI         float64 `json:"bmi"`
	CreatedAt   string  `json:"created_at"`
}

type historyData struct {
	Predictions []historyEntry `json:"predictions"`
}
