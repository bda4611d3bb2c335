package lookup

// DefaultLookups 默认注册在 KindField 上的比较操作符
var DefaultLookups = []*LookupClass{
	{Name: "exact", New: Exact},
	{Name: "iexact", New: IExact},
	{Name: "gt", New: GreaterThan},
	{Name: "gte", New: GreaterThanOrEqual},
	{Name: "lt", New: LessThan},
	{Name: "lte", New: LessThanOrEqual},
	{Name: "contains", New: Contains},
	{Name: "icontains", New: IContains},
	{Name: "startswith", New: StartsWith},
	{Name: "istartswith", New: IStartsWith},
	{Name: "endswith", New: EndsWith},
	{Name: "iendswith", New: IEndsWith},
	{Name: "in", New: In},
	{Name: "range", New: Range},
	{Name: "year", New: Year},
	{Name: "month", New: Month},
	{Name: "day", New: Day},
	{Name: "week_day", New: WeekDay},
	{Name: "hour", New: Hour},
	{Name: "minute", New: Minute},
	{Name: "second", New: Second},
	{Name: "isnull", New: IsNull},
	{Name: "search", New: Search},
	{Name: "regex", New: Regex},
	{Name: "iregex", New: IRegex},
}

// DefaultTransforms 默认注册在 KindCharField 上的转换
var DefaultTransforms = []*TransformClass{
	{Name: "lower", New: Lower},
	{Name: "upper", New: Upper},
	{Name: "length", New: Length},
}

// RegisterDefaults 向 r 注册默认的比较操作符和转换
func RegisterDefaults(r *Registry) {
	for _, lc := range DefaultLookups {
		r.Register(KindField, lc)
	}
	for _, tc := range DefaultTransforms {
		r.Register(KindCharField, tc)
	}
}
