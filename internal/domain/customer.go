package domain

// Address type constants.
const (
	AddressTypeHome   = "Home"
	AddressTypeOffice = "Office"
)

// Customer is an existing storefront customer.
type Customer struct {
	ID    int64
	Email string
}

// Address is a customer address row.
type Address struct {
	ID            int64
	CustomerID    int64
	IsDefault     bool
	AddressType   string
	StreetAddress string
	PhoneNumber   string
	Province      string
	District      string
	Ward          string
}

// Region is a province, district or ward returned by the address service.
type Region struct {
	Code int64
	Name string
}

// FallbackProvinces is used when the address service returns nothing.
var FallbackProvinces = []Region{
	{Code: 1, Name: "Hà Nội"},
	{Code: 79, Name: "Thành phố Hồ Chí Minh"},
	{Code: 48, Name: "Đà Nẵng"},
	{Code: 31, Name: "Hải Phòng"},
	{Code: 92, Name: "Cần Thơ"},
}

// Fixed pools for the address parts the seeder does not fetch.
var (
	Districts    = []string{"Quận 1", "Quận 2", "Quận 3", "Hoàn Kiếm", "Ba Đình", "Cầu Giấy", "Hải Châu", "Thanh Khê"}
	Wards        = []string{"Phường 1", "Phường 2", "Phường Bến Nghé", "Phường Đa Kao", "Phường Cửa Nam", "Phường Láng Hạ"}
	Streets      = []string{"Hoàng Diệu", "Lê Lợi", "Trần Phú", "Nguyễn Trãi", "Hai Bà Trưng", "Lý Thường Kiệt", "Nguyễn Huệ"}
	StreetKinds  = []string{"Đường", "Phố", "Ngõ"}
	AddressTypes = []string{AddressTypeHome, AddressTypeOffice}
)

// Address generation bounds.
const (
	MinAddressesPerCustomer = 1
	MaxAddressesPerCustomer = 2
	MinHouseNumber          = 1
	MaxHouseNumber          = 999
	MinPhoneSuffix          = 900000000
	MaxPhoneSuffix          = 999999999
)
