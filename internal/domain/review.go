package domain

// Review status constants.
const (
	ReviewStatusApproved = "approved"
)

// Review is a product review tied to the order that bought the variant.
type Review struct {
	VariantID  int64
	CustomerID int64
	OrderID    int64
	Rating     int
	Comment    string
	Status     string
}

// ReviewTemplate is a canned rating and comment.
type ReviewTemplate struct {
	Rating  int
	Comment string
}

// Purchase is one delivered order line: who bought which variant in which order.
type Purchase struct {
	OrderID       int64
	CustomerID    int64
	CustomerEmail string
	VariantID     int64
	ProductID     int64
}

// ReviewTemplates are the comments reviews are drawn from.
var ReviewTemplates = []ReviewTemplate{
	{Rating: 5, Comment: "Áo mặc lên form rất đẹp, chất vải mềm và mát. Đóng gói cẩn thận, giao hàng nhanh hơn dự kiến. Sẽ ủng hộ shop thêm."},
	{Rating: 4, Comment: "Chất lượng ổn so với giá tiền, màu sắc giống hình. Tuy nhiên size hơi rộng hơn mong đợi một chút."},
	{Rating: 5, Comment: "Quần mặc rất thoải mái, đường may chắc chắn. Đi làm hay đi chơi đều hợp. Rất hài lòng."},
	{Rating: 4, Comment: "Áo đẹp, vải dày dặn, không bị mỏng. Chỉ tiếc là giao hàng chậm hơn 1 ngày so với dự kiến."},
	{Rating: 3, Comment: "Mẫu mã ổn nhưng chất vải ở mức trung bình, không quá nổi bật. Phù hợp với mức giá."},
	{Rating: 5, Comment: "Mặc lên nhìn gọn dáng, đúng như mô tả. Shop tư vấn nhiệt tình, phản hồi nhanh."},
	{Rating: 4, Comment: "Quần khá đẹp, không bị xù lông sau vài lần giặt. Mong shop bổ sung thêm nhiều màu hơn."},
	{Rating: 5, Comment: "Rất ưng ý! Chất vải mát, mặc không bị bí. Đúng kiểu mình đang tìm."},
	{Rating: 3, Comment: "Form áo hơi ngắn so với mong đợi, nhưng chất lượng vải ổn. Có thể cân nhắc mua lại nếu có size khác."},
	{Rating: 5, Comment: "Sản phẩm đúng hình, mặc lên rất hợp. Giá hợp lý, chất lượng vượt mong đợi."},
	{Rating: 5, Comment: "Áo mặc rất thoải mái, chất vải mềm và không bị ngứa. Giặt máy vẫn giữ form tốt."},
	{Rating: 4, Comment: "Quần đẹp, đường may ổn, mặc lên gọn gàng. Nếu vải dày hơn chút nữa thì hoàn hảo."},
	{Rating: 3, Comment: "Sản phẩm đúng mô tả nhưng chưa có gì nổi bật. Phù hợp mua mặc hằng ngày."},
	{Rating: 5, Comment: "Màu sắc ngoài đời đẹp hơn hình, mặc lên nhìn rất lịch sự. Sẽ mua thêm màu khác."},
	{Rating: 2, Comment: "Chất vải hơi mỏng so với mong đợi, form chưa thật sự hợp dáng mình."},
	{Rating: 4, Comment: "Áo mặc mát, không bị bí. Shop đóng gói cẩn thận, giao hàng đúng hẹn."},
	{Rating: 5, Comment: "Quần mặc lên rất vừa vặn, thoải mái khi vận động. Giá vậy là quá ổn."},
	{Rating: 3, Comment: "Mẫu mã đẹp nhưng size hơi lệch so với bảng size. Nên cân nhắc khi chọn."},
	{Rating: 4, Comment: "Chất lượng ổn định, không có lỗi may. Phù hợp với môi trường công sở."},
	{Rating: 5, Comment: "Rất hài lòng với sản phẩm, từ chất lượng đến dịch vụ. Sẽ quay lại mua tiếp."},
}

// ReviewFrom builds an approved review for a purchase.
func ReviewFrom(p Purchase, t ReviewTemplate) Review {
	return Review{
		VariantID:  p.VariantID,
		CustomerID: p.CustomerID,
		OrderID:    p.OrderID,
		Rating:     t.Rating,
		Comment:    t.Comment,
		Status:     ReviewStatusApproved,
	}
}
