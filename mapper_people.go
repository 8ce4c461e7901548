package yoga

func TeacherToDTO(t *Teacher) *TeacherDTO {
	if t == nil {
		return nil
	}
	return &TeacherDTO{
		ID:        t.ID,
		LastName:  t.LastName,
		FirstName: t.FirstName,
		CreatedAt: timePtr(t.CreatedAt),
		UpdatedAt: timePtr(t.UpdatedAt),
	}
}

func TeachersToDTO(list []*Teacher) []*TeacherDTO {
	if list == nil {
		return nil
	}
	out := make([]*TeacherDTO, 0, len(list))
	for _, t := range list {
		out = append(out, TeacherToDTO(t))
	}
	return out
}

func DTOToTeacher(dto *TeacherDTO) *Teacher {
	if dto == nil {
		return nil
	}
	return &Teacher{
		ID:        dto.ID,
		LastName:  dto.LastName,
		FirstName: dto.FirstName,
		CreatedAt: timeValue(dto.CreatedAt),
		UpdatedAt: timeValue(dto.UpdatedAt),
	}
}

func DTOToTeachers(list []*TeacherDTO) []*Teacher {
	if list == nil {
		return nil
	}
	out := make([]*Teacher, 0, len(list))
	for _, dto := range list {
		out = append(out, DTOToTeacher(dto))
	}
	return out
}

// UserToDTO never exposes the password hash
func UserToDTO(u *User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Admin:     u.Admin,
		CreatedAt: timePtr(u.CreatedAt),
		UpdatedAt: timePtr(u.UpdatedAt),
	}
}

func UsersToDTO(list []*User) []*UserDTO {
	if list == nil {
		return nil
	}
	out := make([]*UserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, UserToDTO(u))
	}
	return out
}

// DTOToUser copies dto.Password as is, callers hash it before storing
func DTOToUser(dto *UserDTO) *User {
	if dto == nil {
		return nil
	}
	return &User{
		ID:           dto.ID,
		Email:        dto.Email,
		LastName:     dto.LastName,
		FirstName:    dto.FirstName,
		Admin:        dto.Admin,
		PasswordHash: dto.Password,
		CreatedAt:    timeValue(dto.CreatedAt),
		UpdatedAt:    timeValue(dto.UpdatedAt),
	}
}

func DTOToUsers(list []*UserDTO) []*User {
	if list == nil {
		return nil
	}
	out := make([]*User, 0, len(list))
	for _, dto := range list {
		out = append(out, DTOToUser(dto))
	}
	return out
}
